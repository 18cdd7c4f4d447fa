package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotConfigured is returned by LoadToolConfig when the tool's config file
// does not exist.
var ErrNotConfigured = errors.New("tool is not configured")

// ToolConfig is the subset of .ddev/config.yaml the launcher cares about.
type ToolConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	DocRoot    string `yaml:"docroot"`
	PHPVersion string `yaml:"php_version"`
}

// LoadToolConfig reads the tool's config file. An empty file is valid.
func LoadToolConfig(path string) (*ToolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotConfigured
		}
		return nil, err
	}
	var tc ToolConfig
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &tc, nil
}

// ApplyToolConfig points the web root at the tool's docroot when one is
// declared and it is a valid single path element.
func (c *Config) ApplyToolConfig(tc *ToolConfig) {
	if tc == nil || tc.DocRoot == "" {
		return
	}
	if validName(tc.DocRoot) != nil || tc.DocRoot == c.ConfigDir {
		return
	}
	c.WebRoot = tc.DocRoot
}
