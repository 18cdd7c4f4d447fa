package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the config for errors. Every project-relative name must be
// a single path element so the launcher never touches anything outside the
// project root.
func Validate(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		return fmt.Errorf("config: project root is required")
	}
	if !filepath.IsAbs(cfg.ProjectRoot) {
		return fmt.Errorf("config: project root %q must be absolute", cfg.ProjectRoot)
	}
	if strings.TrimSpace(cfg.Tool) == "" {
		return fmt.Errorf("config: tool is required")
	}

	names := []struct {
		field, value string
	}{
		{"marker file", cfg.MarkerFile},
		{"config dir", cfg.ConfigDir},
		{"config file", cfg.ConfigFile},
		{"web root", cfg.WebRoot},
		{"entry point", cfg.EntryPoint},
	}
	for _, n := range names {
		if err := validName(n.value); err != nil {
			return fmt.Errorf("config: %s: %w", n.field, err)
		}
	}
	if cfg.ConfigDir == cfg.WebRoot {
		return fmt.Errorf("config: config dir and web root must differ (both %q)", cfg.WebRoot)
	}
	if cfg.MarkerFile == cfg.ConfigDir || cfg.MarkerFile == cfg.WebRoot {
		return fmt.Errorf("config: marker file %q collides with a scaffold directory", cfg.MarkerFile)
	}
	if cfg.Package() == "" {
		return fmt.Errorf("config: no package to create (set a create target or a default package)")
	}
	return nil
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%q is not a valid name", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, string(filepath.Separator)) {
		return fmt.Errorf("%q must not contain path separators", name)
	}
	return nil
}
