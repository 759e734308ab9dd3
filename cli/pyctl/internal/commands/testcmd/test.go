package testcmd

import (
	"context"

	"pykit/cli/pyctl/internal/cmdregistry"
	"pykit/cli/pyctl/internal/pipeline"
)

// Register adds the test and coverage commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("test", handleTest)
	r.Register("coverage", handleCoverage)
}

func handleTest(ctx *cmdregistry.Context) error {
	return pipeline.Run(context.Background(), pipeline.Test(ctx.Config, ctx.Args), pipeline.Options{
		Dir:    ctx.Root,
		Prefix: ctx.Prefix,
		Env:    ctx.Config.Environ(),
		DryRun: ctx.DryRun,
	})
}

func handleCoverage(ctx *cmdregistry.Context) error {
	return pipeline.Run(context.Background(), pipeline.Coverage(ctx.Config), pipeline.Options{
		Dir:    ctx.Root,
		Prefix: ctx.Prefix,
		Env:    ctx.Config.Environ(),
		DryRun: ctx.DryRun,
	})
}
