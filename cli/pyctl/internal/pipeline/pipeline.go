// Package pipeline composes and runs the ordered tool invocations behind each
// pyctl command. A pipeline is a flat sequence of subprocess steps: every
// command line is echoed to stderr before launch, and the first non-zero exit
// aborts the remainder and becomes the run's exit code.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pykit/cli/pyctl/internal/config"
	"pykit/cli/pyctl/internal/execx"
	"pykit/cli/pyctl/internal/pyenv"
	"pykit/cli/pyctl/internal/steplog"
)

// Step is one external command in a pipeline.
type Step struct {
	// Tool is the bare tool name (resolved via prefix or PATH) or a script path.
	Tool string
	// Args is the fixed argument list.
	Args []string
	// UsePrefix selects the virtualenv-local executable when a prefix is set.
	// Script paths such as ./scripts/unasync never take the prefix.
	UsePrefix bool
}

// Options carries the explicit run parameters. Prefix and environment are
// passed here rather than exported to the process environment so the data
// flow is visible at the call site.
type Options struct {
	// Dir is the project root commands run in; empty means the current directory.
	Dir string
	// Prefix is the execution prefix, e.g. "venv/bin/", or empty.
	Prefix string
	// Env is extra child-process environment (KEY=VALUE pairs).
	Env []string
	// DryRun echoes the composed commands without executing them.
	DryRun bool
	// Trace receives the "+ cmd" echo lines; defaults to os.Stderr.
	Trace io.Writer
}

// StepError reports the first failing step of a run.
type StepError struct {
	Tool string
	Code int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// Run executes steps in order, echoing each command line before launch and
// stopping at the first non-zero exit. The returned error is a *StepError
// carrying the failing step's exit code, or nil when every step succeeded.
func Run(ctx context.Context, steps []Step, opts Options) error {
	trace := opts.Trace
	if trace == nil {
		trace = os.Stderr
	}
	for _, step := range steps {
		name := step.Tool
		if step.UsePrefix {
			name = pyenv.Tool(opts.Prefix, step.Tool)
		}
		fmt.Fprintf(trace, "+ %s\n", strings.Join(append([]string{name}, step.Args...), " "))
		if opts.DryRun {
			steplog.Skipped(name)
			continue
		}
		steplog.Started(name, step.Args)
		start := time.Now()
		res := execx.RunIn(ctx, opts.Dir, opts.Env, name, step.Args...)
		steplog.Finished(name, res.Code, time.Since(start))
		if res.Code != 0 {
			return &StepError{Tool: name, Code: res.Code}
		}
	}
	return nil
}

// Lint builds the in-place format pipeline: remove unused imports, sort
// imports, reformat, then regenerate the sync code from the async source.
func Lint(cfg config.Config) []Step {
	return []Step{
		{Tool: "autoflake", Args: append([]string{"--in-place", "--recursive"}, cfg.Sources...), UsePrefix: true},
		{Tool: "isort", Args: append([]string{"--project=" + cfg.Project, "--recursive", "--apply"}, cfg.Sources...), UsePrefix: true},
		{Tool: "black", Args: append([]string{"--exclude", cfg.BlackExclude, "--target-version=" + cfg.TargetVersion}, cfg.Sources...), UsePrefix: true},
		{Tool: cfg.UnasyncScript},
	}
}

// Check builds the verification pipeline: formatting diff, style checks, types.
func Check(cfg config.Config) []Step {
	return []Step{
		{Tool: "black", Args: append([]string{"--exclude", cfg.BlackExclude, "--target-version=" + cfg.TargetVersion, "--check", "--diff"}, cfg.Sources...), UsePrefix: true},
		{Tool: "flake8", Args: cfg.Sources, UsePrefix: true},
		{Tool: "mypy", Args: []string{cfg.Project}, UsePrefix: true},
	}
}

// Test builds the test pipeline, forwarding extra pytest arguments.
func Test(cfg config.Config, extra []string) []Step {
	return []Step{
		{Tool: "coverage", Args: append([]string{"run", "-m", "pytest"}, extra...), UsePrefix: true},
	}
}

// Coverage builds the coverage-report pipeline.
func Coverage(cfg config.Config) []Step {
	return []Step{
		{Tool: "coverage", Args: []string{"report", "--show-missing", "--skip-covered"}, UsePrefix: true},
	}
}

// Install builds the environment setup pipeline. createVenv is false when the
// virtualenv already exists. The pip step addresses the venv directly and
// ignores any prefix.
func Install(cfg config.Config, createVenv bool) []Step {
	steps := []Step{}
	if createVenv {
		steps = append(steps, Step{Tool: "python3", Args: []string{"-m", "venv", cfg.VenvDir}})
	}
	return append(steps, Step{Tool: cfg.VenvDir + "/bin/pip", Args: []string{"install", "-r", "requirements.txt"}})
}
