package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the project constants driving the tool pipelines. The zero
// value is not usable; start from Default and overlay overrides.
type Config struct {
	// Project is the package name passed to isort and the target of mypy.
	Project string `yaml:"project"`
	// Sources are the directories handed to the formatting tools, in order.
	Sources []string `yaml:"sources"`
	// VenvDir is the directory probed for a project-local virtualenv.
	VenvDir string `yaml:"venv_dir"`
	// BlackExclude is the path-pattern regex black skips. The generated sync
	// trees are excluded because unasync owns their formatting.
	BlackExclude string `yaml:"black_exclude"`
	// TargetVersion is black's language compatibility level.
	TargetVersion string `yaml:"target_version"`
	// UnasyncScript is the repository-relative path of the sync-generation script.
	UnasyncScript string `yaml:"unasync_script"`
	// Env is extra environment for child processes (KEY: VALUE).
	Env map[string]string `yaml:"env"`
}

// Default returns the built-in project constants.
func Default() Config {
	return Config{
		Project:       "httpcore",
		Sources:       []string{"httpcore", "tests"},
		VenvDir:       "venv",
		BlackExclude:  "/(_sync|sync_tests)/",
		TargetVersion: "py36",
		UnasyncScript: "./scripts/unasync",
		Env:           map[string]string{},
	}
}

// Read loads the effective configuration for a project root: defaults, then an
// optional YAML override (PYCTL_CONFIG path, else root/.pyctl.yaml), then an
// optional root/.env contributing child environment without overriding keys the
// YAML already set. Absent files are not errors.
func Read(root string) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(os.Getenv("PYCTL_CONFIG"))
	if path == "" {
		path = filepath.Join(root, ".pyctl.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var over Config
		if err := yaml.Unmarshal(data, &over); err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
		merge(&cfg, over)
	case os.IsNotExist(err):
		// defaults apply
	default:
		return cfg, errors.Wrapf(err, "read %s", path)
	}

	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err == nil {
		vars, err := godotenv.Read(envPath)
		if err != nil {
			return cfg, errors.Wrapf(err, "read %s", envPath)
		}
		for k, v := range vars {
			if _, ok := cfg.Env[k]; !ok {
				cfg.Env[k] = v
			}
		}
	}
	return cfg, nil
}

// Environ renders the configured child environment as KEY=VALUE pairs.
func (c Config) Environ() []string {
	out := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	return out
}

func merge(dst *Config, over Config) {
	if strings.TrimSpace(over.Project) != "" {
		dst.Project = over.Project
	}
	if len(over.Sources) > 0 {
		dst.Sources = over.Sources
	}
	if strings.TrimSpace(over.VenvDir) != "" {
		dst.VenvDir = over.VenvDir
	}
	if strings.TrimSpace(over.BlackExclude) != "" {
		dst.BlackExclude = over.BlackExclude
	}
	if strings.TrimSpace(over.TargetVersion) != "" {
		dst.TargetVersion = over.TargetVersion
	}
	if strings.TrimSpace(over.UnasyncScript) != "" {
		dst.UnasyncScript = over.UnasyncScript
	}
	for k, v := range over.Env {
		dst.Env[k] = v
	}
}
