// Package pyenv selects the execution prefix for Python tooling. When the
// project carries a virtualenv directory, tools are resolved from its bin/
// directory instead of the search path.
package pyenv

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultVenvDir is the directory probed for a project-local virtualenv.
const DefaultVenvDir = "venv"

// Prefix returns the execution prefix for tools under root: "<venvDir>/bin/"
// when root contains a directory named venvDir, otherwise the empty string.
// The prefix stays relative so commands resolve against the project root.
func Prefix(root, venvDir string) string {
	if venvDir == "" {
		venvDir = DefaultVenvDir
	}
	probe := venvDir
	if root != "" {
		probe = filepath.Join(root, venvDir)
	}
	if st, err := os.Stat(probe); err == nil && st.IsDir() {
		return venvDir + "/bin/"
	}
	return ""
}

// Tool joins a prefix and a tool name into the command to execute. With an
// empty prefix the bare name is returned and resolves via PATH.
func Tool(prefix, name string) string {
	return prefix + name
}

// Resolvable reports whether a tool would launch under the given root and
// prefix: a prefixed tool must exist inside the venv bin directory, an
// unprefixed one must be found on PATH.
func Resolvable(root, prefix, name string) bool {
	if prefix != "" {
		st, err := os.Stat(filepath.Join(root, prefix, name))
		return err == nil && !st.IsDir()
	}
	_, err := exec.LookPath(name)
	return err == nil
}
