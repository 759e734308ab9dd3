package lintcmd

import (
	"context"

	"pykit/cli/pyctl/internal/cmdregistry"
	"pykit/cli/pyctl/internal/pipeline"
)

// Register adds the lint command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("lint", handle)
}

func handle(ctx *cmdregistry.Context) error {
	return pipeline.Run(context.Background(), pipeline.Lint(ctx.Config), pipeline.Options{
		Dir:    ctx.Root,
		Prefix: ctx.Prefix,
		Env:    ctx.Config.Environ(),
		DryRun: ctx.DryRun,
	})
}
