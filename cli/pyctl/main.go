package main

import (
	"errors"
	"fmt"
	"os"

	"pykit/cli/pyctl/internal/cmdregistry"
	checkcmd "pykit/cli/pyctl/internal/commands/checkcmd"
	installcmd "pykit/cli/pyctl/internal/commands/installcmd"
	lintcmd "pykit/cli/pyctl/internal/commands/lintcmd"
	preflightcmd "pykit/cli/pyctl/internal/commands/preflightcmd"
	testcmd "pykit/cli/pyctl/internal/commands/testcmd"
	"pykit/cli/pyctl/internal/config"
	"pykit/cli/pyctl/internal/pipeline"
	"pykit/cli/pyctl/internal/pyenv"
	"pykit/cli/pyctl/internal/steplog"
)

func usage() {
	fmt.Fprintf(os.Stderr, `pyctl — dev workflow runner
Usage: pyctl [--dry-run] [<command> [args]]

Commands:
  lint        remove unused imports, sort imports, reformat, regenerate sync code (default)
  check       formatting diff, flake8, mypy (no files modified)
  test        coverage run -m pytest [args...]
  coverage    coverage report
  install     create venv and pip install requirements
  preflight   verify the external tools are resolvable

Flags:
  --dry-run   print the composed commands without executing them

Environment:
  PYCTL_CONFIG     path to an override config (default: .pyctl.yaml if present)
  PYCTL_LOG_LEVEL  logrus level for step diagnostics (debug shows per-step records)
  PYCTL_DEBUG=1    echo commands executed outside pipelines
`)
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, "pyctl: "+msg)
	os.Exit(1)
}

func main() {
	steplog.Init()

	var dryRun bool
	args := os.Args[1:]
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch a {
		case "--dry-run":
			dryRun = true
		case "-h", "--help", "help":
			usage()
			return
		default:
			out = append(out, a)
		}
	}
	args = out

	// Parameterless invocation runs the format pipeline.
	cmd := "lint"
	sub := []string{}
	if len(args) > 0 {
		cmd = args[0]
		sub = args[1:]
	}

	root, err := os.Getwd()
	if err != nil {
		die(err.Error())
	}
	cfg, err := config.Read(root)
	if err != nil {
		die(err.Error())
	}
	prefix := pyenv.Prefix(root, cfg.VenvDir)

	registry := cmdregistry.New()
	lintcmd.Register(registry)
	checkcmd.Register(registry)
	testcmd.Register(registry)
	installcmd.Register(registry)
	preflightcmd.Register(registry)

	ctx := &cmdregistry.Context{
		DryRun: dryRun,
		Root:   root,
		Prefix: prefix,
		Args:   sub,
		Config: cfg,
	}
	handler, ok := registry.Lookup(cmd)
	if !ok {
		fmt.Fprintf(os.Stderr, "pyctl: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err := handler(ctx); err != nil {
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			// The failing tool already wrote its diagnostics; surface its code.
			os.Exit(stepErr.Code)
		}
		die(err.Error())
	}
}
