package checkcmd

import (
	"context"

	"pykit/cli/pyctl/internal/cmdregistry"
	"pykit/cli/pyctl/internal/pipeline"
)

// Register adds the check command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("check", handle)
}

func handle(ctx *cmdregistry.Context) error {
	return pipeline.Run(context.Background(), pipeline.Check(ctx.Config), pipeline.Options{
		Dir:    ctx.Root,
		Prefix: ctx.Prefix,
		Env:    ctx.Config.Environ(),
		DryRun: ctx.DryRun,
	})
}
