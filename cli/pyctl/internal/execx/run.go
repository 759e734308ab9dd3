package execx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result carries the exit code and underlying error of a finished command.
type Result struct {
	Code int
	Err  error
}

// Run executes a command with inherited stdio and no deadline.
func Run(name string, args ...string) Result {
	return RunCtx(context.Background(), name, args...)
}

// RunCtx executes a command with inherited stdio. The child's exit code is
// extracted from *exec.ExitError; launch failures (not found, not executable)
// map to code 1.
func RunCtx(ctx context.Context, name string, args ...string) Result {
	return RunIn(ctx, "", nil, name, args...)
}

// RunIn executes a command in dir with extra environment entries appended to
// the inherited environment. An empty dir means the current directory; a nil
// env adds nothing. A relative name containing a path separator is resolved
// against dir, matching shell behavior for script paths.
func RunIn(ctx context.Context, dir string, env []string, name string, args ...string) Result {
	if os.Getenv("PYCTL_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return resultOf(ctx, cmd.Run())
}

// Capture runs a command and returns its stdout along with the exit result.
func Capture(ctx context.Context, name string, args ...string) (string, Result) {
	return CaptureIn(ctx, "", nil, name, args...)
}

// CaptureIn mirrors RunIn but collects stdout instead of streaming it.
func CaptureIn(ctx context.Context, dir string, env []string, name string, args ...string) (string, Result) {
	if os.Getenv("PYCTL_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.Output()
	return string(out), resultOf(ctx, err)
}

func resultOf(ctx context.Context, err error) Result {
	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else if ctx.Err() == context.DeadlineExceeded {
			code = 124
		} else {
			code = 1
		}
	}
	return Result{Code: code, Err: err}
}
