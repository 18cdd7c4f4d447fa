package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults for a Drupal CMS project managed by DDEV.
const (
	DefaultMarkerFile     = ".drupal-cms"
	DefaultTool           = "ddev"
	DefaultConfigDir      = ".ddev"
	DefaultConfigFile     = "config.yaml"
	DefaultWebRoot        = "web"
	DefaultEntryPoint     = "index.php"
	DefaultPackage        = "drupal/cms"
	DefaultProjectType    = "drupal11"
	DefaultPHPVersion     = "8.3"
	DefaultToolConstraint = ">=1.24.0"
)

// Config is everything the launcher needs to know about one bootstrap
// attempt. The CLI layer builds it from flags and environment variables.
type Config struct {
	ProjectRoot string
	InContainer bool
	// CreateTarget is passed to "composer create" when set.
	CreateTarget string

	Tool           string
	MarkerFile     string
	ConfigDir      string
	ConfigFile     string
	WebRoot        string
	EntryPoint     string
	DefaultPackage string

	ProjectType    string
	PHPVersion     string
	ToolConstraint string
}

// Default returns a Config rooted at projectRoot with every other field set
// to its default.
func Default(projectRoot string) Config {
	return Config{
		ProjectRoot:    projectRoot,
		Tool:           DefaultTool,
		MarkerFile:     DefaultMarkerFile,
		ConfigDir:      DefaultConfigDir,
		ConfigFile:     DefaultConfigFile,
		WebRoot:        DefaultWebRoot,
		EntryPoint:     DefaultEntryPoint,
		DefaultPackage: DefaultPackage,
		ProjectType:    DefaultProjectType,
		PHPVersion:     DefaultPHPVersion,
		ToolConstraint: DefaultToolConstraint,
	}
}

// MarkerPath returns the absolute path of the project marker file.
func (c *Config) MarkerPath() string {
	return filepath.Join(c.ProjectRoot, c.MarkerFile)
}

// ConfigDirPath returns the absolute path of the tool's config directory.
func (c *Config) ConfigDirPath() string {
	return filepath.Join(c.ProjectRoot, c.ConfigDir)
}

// ConfigFilePath returns the absolute path of the tool's config file.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.ProjectRoot, c.ConfigDir, c.ConfigFile)
}

// WebRootPath returns the absolute path of the web root.
func (c *Config) WebRootPath() string {
	return filepath.Join(c.ProjectRoot, c.WebRoot)
}

// EntryPointPath returns the absolute path of the web root's entry point.
func (c *Config) EntryPointPath() string {
	return filepath.Join(c.ProjectRoot, c.WebRoot, c.EntryPoint)
}

// Package returns the package to hand to "composer create".
func (c *Config) Package() string {
	if c.CreateTarget != "" {
		return c.CreateTarget
	}
	return c.DefaultPackage
}

// Truthy interprets the container signal. Empty is false, anything
// strconv.ParseBool understands is taken at face value, and any other
// non-empty string is true.
func Truthy(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return true
	}
	return b
}
