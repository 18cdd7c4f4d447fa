package project

import (
	"os"

	"github.com/jorge-barreto/cmslaunch/internal/config"
	"github.com/jorge-barreto/cmslaunch/internal/devtool"
)

// HasMarker reports whether the project marker file exists.
func HasMarker(cfg *config.Config) bool {
	_, err := os.Lstat(cfg.MarkerPath())
	return err == nil
}

// ToolConfig loads the tool's config file for the project.
func ToolConfig(cfg *config.Config) (*config.ToolConfig, error) {
	return config.LoadToolConfig(cfg.ConfigFilePath())
}

// Configured reports whether the tool's config file exists and parses.
func Configured(cfg *config.Config) bool {
	_, err := ToolConfig(cfg)
	return err == nil
}

// Scaffolded reports whether the web root's entry point exists.
func Scaffolded(cfg *config.Config) bool {
	info, err := os.Stat(cfg.EntryPointPath())
	return err == nil && !info.IsDir()
}

// Status is a point-in-time view of a project, used by the status command.
type Status struct {
	Root        string
	InContainer bool
	HasMarker   bool

	ToolPath string
	ToolErr  error

	Configured bool
	Tool       *config.ToolConfig
	ConfigErr  error

	WebRoot    string
	Scaffolded bool
}

// Inspect gathers a Status without mutating anything.
func Inspect(cfg config.Config, tool devtool.DevTool) Status {
	st := Status{
		Root:        cfg.ProjectRoot,
		InContainer: cfg.InContainer,
		HasMarker:   HasMarker(&cfg),
	}
	st.ToolPath, st.ToolErr = tool.Available()

	tc, err := ToolConfig(&cfg)
	if err == nil {
		st.Configured = true
		st.Tool = tc
		cfg.ApplyToolConfig(tc)
	} else {
		st.ConfigErr = err
	}

	st.WebRoot = cfg.WebRoot
	st.Scaffolded = Scaffolded(&cfg)
	return st
}
