package preflightcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pykit/cli/pyctl/internal/cmdregistry"
	"pykit/cli/pyctl/internal/pyenv"
)

// Register adds the preflight command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register("preflight", handle)
}

func handle(ctx *cmdregistry.Context) error {
	ok := true
	for _, tool := range []string{"autoflake", "isort", "black"} {
		if pyenv.Resolvable(ctx.Root, ctx.Prefix, tool) {
			fmt.Printf("[preflight] %s: OK\n", tool)
		} else {
			fmt.Fprintf(os.Stderr, "[preflight] %s not found (prefix %q)\n", tool, ctx.Prefix)
			ok = false
		}
	}
	for _, tool := range []string{"flake8", "mypy", "coverage"} {
		if pyenv.Resolvable(ctx.Root, ctx.Prefix, tool) {
			fmt.Printf("[preflight] %s: OK\n", tool)
		} else {
			fmt.Fprintf(os.Stderr, "[preflight] %s not found (only needed for check/test)\n", tool)
		}
	}
	script := strings.TrimPrefix(ctx.Config.UnasyncScript, "./")
	if st, err := os.Stat(filepath.Join(ctx.Root, script)); err == nil && !st.IsDir() {
		fmt.Printf("[preflight] %s: OK\n", ctx.Config.UnasyncScript)
	} else {
		fmt.Fprintf(os.Stderr, "[preflight] %s not found\n", ctx.Config.UnasyncScript)
		ok = false
	}
	if ctx.Prefix == "" {
		fmt.Println("[preflight] no venv directory; tools resolve via PATH")
	}
	if !ok {
		return fmt.Errorf("preflight checks failed")
	}
	return nil
}
