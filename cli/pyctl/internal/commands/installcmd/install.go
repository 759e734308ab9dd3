package installcmd

import (
	"context"
	"os"
	"path/filepath"

	"pykit/cli/pyctl/internal/cmdregistry"
	"pykit/cli/pyctl/internal/pipeline"
)

// Register adds the install command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("install", handle)
}

func handle(ctx *cmdregistry.Context) error {
	createVenv := true
	if st, err := os.Stat(filepath.Join(ctx.Root, ctx.Config.VenvDir)); err == nil && st.IsDir() {
		createVenv = false
	}
	return pipeline.Run(context.Background(), pipeline.Install(ctx.Config, createVenv), pipeline.Options{
		Dir:    ctx.Root,
		Env:    ctx.Config.Environ(),
		DryRun: ctx.DryRun,
	})
}
