package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ProjectFixture prepares a temporary project tree with stub tool executables
// that append their invocation (argv[0] plus arguments) to a shared log file,
// for exercising pipelines without the real Python tooling installed.
type ProjectFixture struct {
	t *testing.T
	// Root is the temporary project directory.
	Root string
	// BinDir holds PATH-resolved stub tools.
	BinDir string

	logPath string
}

// NewProject builds a project fixture with empty source and scripts directories.
func NewProject(t *testing.T) *ProjectFixture {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"httpcore", "tests", "scripts"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir stub bin: %v", err)
	}
	return &ProjectFixture{
		t:       t,
		Root:    root,
		BinDir:  binDir,
		logPath: filepath.Join(root, "invocations.log"),
	}
}

// WithVenv creates the venv/bin directory inside the project root.
func (f *ProjectFixture) WithVenv() *ProjectFixture {
	f.t.Helper()
	if err := os.MkdirAll(filepath.Join(f.Root, "venv", "bin"), 0o755); err != nil {
		f.t.Fatalf("mkdir venv/bin: %v", err)
	}
	return f
}

// StubVenvTool installs a stub executable under venv/bin exiting with code.
func (f *ProjectFixture) StubVenvTool(name string, code int) {
	f.t.Helper()
	f.writeStub(filepath.Join(f.Root, "venv", "bin", name), name, code)
}

// StubPathTool installs a stub executable in BinDir exiting with code. Tests
// point PATH at BinDir (t.Setenv) so the stub resolves like a real tool.
func (f *ProjectFixture) StubPathTool(name string, code int) {
	f.t.Helper()
	f.writeStub(filepath.Join(f.BinDir, name), name, code)
}

// StubScript installs a stub at a project-relative path (e.g. scripts/unasync).
func (f *ProjectFixture) StubScript(rel string, code int) {
	f.t.Helper()
	f.writeStub(filepath.Join(f.Root, rel), rel, code)
}

// Invocations returns the recorded command lines in execution order.
func (f *ProjectFixture) Invocations() []string {
	f.t.Helper()
	data, err := os.ReadFile(f.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		f.t.Fatalf("read invocation log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

func (f *ProjectFixture) writeStub(path, label string, code int) {
	script := fmt.Sprintf("#!/bin/sh\necho \"%s $@\" >> %q\nexit %d\n", label, f.logPath, code)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.t.Fatalf("mkdir for stub %s: %v", label, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		f.t.Fatalf("write stub %s: %v", label, err)
	}
}
