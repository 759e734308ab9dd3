package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pykit/cli/pyctl/internal/config"
	"pykit/cli/pyctl/internal/testutil"
)

func TestLintStepOrderAndTargets(t *testing.T) {
	steps := Lint(config.Default())
	if len(steps) != 4 {
		t.Fatalf("expected 4 lint steps, got %d", len(steps))
	}
	order := []string{"autoflake", "isort", "black", "./scripts/unasync"}
	for i, want := range order {
		if steps[i].Tool != want {
			t.Fatalf("step %d: expected %s, got %s", i, want, steps[i].Tool)
		}
	}
	// the first three tools all receive the same target set, in order
	for i := 0; i < 3; i++ {
		args := steps[i].Args
		if len(args) < 2 || args[len(args)-2] != "httpcore" || args[len(args)-1] != "tests" {
			t.Fatalf("step %d targets: %v", i, args)
		}
		if !steps[i].UsePrefix {
			t.Fatalf("step %d should use the execution prefix", i)
		}
	}
	if steps[3].UsePrefix {
		t.Fatalf("unasync script must not take the execution prefix")
	}
	if len(steps[3].Args) != 0 {
		t.Fatalf("unasync script takes no arguments: %v", steps[3].Args)
	}
}

func TestLintStepFlags(t *testing.T) {
	steps := Lint(config.Default())
	joined := func(i int) string { return strings.Join(steps[i].Args, " ") }
	if got := joined(0); got != "--in-place --recursive httpcore tests" {
		t.Fatalf("autoflake args: %q", got)
	}
	if got := joined(1); got != "--project=httpcore --recursive --apply httpcore tests" {
		t.Fatalf("isort args: %q", got)
	}
	if got := joined(2); got != "--exclude /(_sync|sync_tests)/ --target-version=py36 httpcore tests" {
		t.Fatalf("black args: %q", got)
	}
}

func TestCheckStepsDoNotModify(t *testing.T) {
	steps := Check(config.Default())
	if steps[0].Tool != "black" || !contains(steps[0].Args, "--check") || !contains(steps[0].Args, "--diff") {
		t.Fatalf("black check step: %v", steps[0])
	}
	for _, s := range steps {
		if contains(s.Args, "--in-place") || contains(s.Args, "--apply") {
			t.Fatalf("check pipeline must not modify files: %v", s)
		}
	}
}

func TestInstallSkipsVenvCreation(t *testing.T) {
	cfg := config.Default()
	with := Install(cfg, true)
	if len(with) != 2 || with[0].Tool != "python3" {
		t.Fatalf("expected venv creation first: %v", with)
	}
	without := Install(cfg, false)
	if len(without) != 1 || without[0].Tool != "venv/bin/pip" {
		t.Fatalf("expected pip only: %v", without)
	}
}

func TestRunEchoesBeforeExecuting(t *testing.T) {
	f := testutil.NewProject(t)
	f.StubPathTool("sorter", 0)
	t.Setenv("PATH", f.BinDir)
	var trace bytes.Buffer
	err := Run(context.Background(), []Step{{Tool: "sorter", Args: []string{"httpcore", "tests"}, UsePrefix: true}}, Options{
		Dir:   f.Root,
		Trace: &trace,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := trace.String(); got != "+ sorter httpcore tests\n" {
		t.Fatalf("unexpected trace %q", got)
	}
	if inv := f.Invocations(); len(inv) != 1 || inv[0] != "sorter httpcore tests" {
		t.Fatalf("unexpected invocations %v", inv)
	}
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	f := testutil.NewProject(t)
	var trace bytes.Buffer
	err := Run(context.Background(), Lint(config.Default()), Options{
		Dir:    f.Root,
		Prefix: "venv/bin/",
		DryRun: true,
		Trace:  &trace,
	})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(trace.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 echoed commands, got %d:\n%s", len(lines), trace.String())
	}
	if lines[0] != "+ venv/bin/autoflake --in-place --recursive httpcore tests" {
		t.Fatalf("unexpected first echo %q", lines[0])
	}
	if lines[3] != "+ ./scripts/unasync" {
		t.Fatalf("unexpected last echo %q", lines[3])
	}
	if inv := f.Invocations(); inv != nil {
		t.Fatalf("dry run executed commands: %v", inv)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	f := testutil.NewProject(t)
	f.StubPathTool("first", 0)
	f.StubPathTool("second", 5)
	f.StubPathTool("third", 0)
	t.Setenv("PATH", f.BinDir)
	var trace bytes.Buffer
	steps := []Step{{Tool: "first"}, {Tool: "second"}, {Tool: "third"}}
	err := Run(context.Background(), steps, Options{Dir: f.Root, Trace: &trace})
	stepErr, ok := err.(*StepError)
	if !ok {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if stepErr.Code != 5 || stepErr.Tool != "second" {
		t.Fatalf("unexpected step error %+v", stepErr)
	}
	inv := f.Invocations()
	if len(inv) != 2 || !strings.HasPrefix(inv[0], "first") || !strings.HasPrefix(inv[1], "second") {
		t.Fatalf("fail-fast violated, invocations: %v", inv)
	}
}

func TestRunLaunchFailureIsFailFast(t *testing.T) {
	f := testutil.NewProject(t)
	f.StubPathTool("later", 0)
	t.Setenv("PATH", f.BinDir)
	steps := []Step{{Tool: "no-such-tool"}, {Tool: "later"}}
	var trace bytes.Buffer
	err := Run(context.Background(), steps, Options{Dir: f.Root, Trace: &trace})
	stepErr, ok := err.(*StepError)
	if !ok || stepErr.Code != 1 {
		t.Fatalf("expected launch failure as code 1, got %v", err)
	}
	if inv := f.Invocations(); inv != nil {
		t.Fatalf("no step should have executed: %v", inv)
	}
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
