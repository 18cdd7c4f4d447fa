package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/cmslaunch/internal/config"
	"github.com/jorge-barreto/cmslaunch/internal/devtool"
	"github.com/jorge-barreto/cmslaunch/internal/project"
	"github.com/jorge-barreto/cmslaunch/internal/snapshot"
	"github.com/jorge-barreto/cmslaunch/internal/ux"
)

// Launcher drives the bootstrap state machine for one project.
type Launcher struct {
	Config config.Config
	Tool   devtool.DevTool
	Logger *zap.Logger
}

// New returns a Launcher. A nil logger discards debug output.
func New(cfg config.Config, tool devtool.DevTool, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Launcher{Config: cfg, Tool: tool, Logger: logger}
}

// Run validates the project, builds or repairs the scaffold if needed, and
// starts and launches the site. A nil return means exit status 0; any
// failure is an *ExitError.
func (l *Launcher) Run(ctx context.Context) error {
	began := time.Now()
	cfg := l.Config

	if cfg.InContainer {
		l.Logger.Debug("container signal set, nothing to do")
		ux.Info(MsgAlreadyRunning)
		return nil
	}

	if !project.HasMarker(&cfg) {
		ux.Fatal(MsgNotAProject)
		return exitErr(ExitNotAProject, MsgNotAProject, nil)
	}

	toolPath, err := l.Tool.Available()
	if err != nil {
		ux.Fatal(MsgToolMissing)
		return exitErr(ExitToolMissing, MsgToolMissing, err)
	}
	l.Logger.Debug("tool found", zap.String("path", toolPath))

	if tc, err := project.ToolConfig(&cfg); err == nil {
		cfg.ApplyToolConfig(tc)
		if project.Scaffolded(&cfg) {
			l.Logger.Debug("project already set up", zap.String("webroot", cfg.WebRoot))
			return l.startAndLaunch(ctx, began)
		}
	}

	if err := l.bootstrap(ctx, &cfg, toolPath); err != nil {
		return err
	}
	return l.startAndLaunch(ctx, began)
}

// bootstrap configures the tool and creates the scaffold under the cover of
// a snapshot. A configure failure restores the snapshot; a scaffold failure
// leaves the project as the tool left it.
func (l *Launcher) bootstrap(ctx context.Context, cfg *config.Config, toolPath string) error {
	ux.Step("Backing up project")
	snap, err := snapshot.Take(cfg.ProjectRoot)
	if err != nil {
		msg := "FATAL: Could not back up the project."
		ux.Fatal(msg)
		return exitErr(ExitSetupFailed, msg, err)
	}
	l.Logger.Debug("snapshot taken", zap.String("dir", snap.Dir()), zap.Strings("entries", snap.Entries()))

	if !project.Configured(cfg) {
		if err := l.configure(ctx, cfg, snap); err != nil {
			return err
		}
	}

	if !project.Scaffolded(cfg) {
		ux.Step("Creating project with Composer")
		res, err := l.Tool.InstallDependencies(ctx, cfg.Package())
		if err != nil || res.ExitCode != 0 || !project.Scaffolded(cfg) {
			l.logFailure("composer create", res)
			if derr := snap.Discard(); derr != nil {
				ux.Warn("could not remove backup %s: %v", snap.Dir(), derr)
			}
			if err == nil && res.ExitCode != 0 {
				err = fmt.Errorf("composer create exited %d", res.ExitCode)
			}
			ux.Fatal(MsgSetupFailed)
			return exitErr(ExitSetupFailed, MsgSetupFailed, err)
		}
	}

	ux.Step("Cleaning up")
	if err := cleanup(cfg, snap, toolPath); err != nil {
		msg := "FATAL: Could not remove the original project files."
		ux.Fatal(msg)
		return exitErr(ExitSetupFailed, msg, err)
	}
	return nil
}

func (l *Launcher) configure(ctx context.Context, cfg *config.Config, snap *snapshot.Snapshot) error {
	ux.Step("Configuring DDEV")
	res, err := l.Tool.Configure(ctx, cfg.WebRoot)
	if err != nil {
		return l.rollback(cfg, snap, exitErr(ExitSetupFailed, MsgConfigFailed, err))
	}

	if res.ExitCode != 0 {
		l.logFailure("config", res)
	}
	tc, cerr := project.ToolConfig(cfg)
	switch {
	case res.ExitCode != 0 && cerr != nil:
		return l.rollback(cfg, snap, exitErr(ExitSetupFailed, MsgConfigFailed,
			fmt.Errorf("ddev config exited %d", res.ExitCode)))
	case cerr != nil:
		return l.rollback(cfg, snap, exitErr(ExitSetupFailed, MsgSetupFailed, cerr))
	case res.ExitCode != 0:
		ux.Warn("ddev config exited %d but wrote %s; continuing", res.ExitCode, cfg.ConfigFilePath())
	}
	cfg.ApplyToolConfig(tc)
	return nil
}

// rollback removes the tool's config directory and restores the snapshot.
// A restore failure is reported alongside the original cause and the backup
// is left on disk.
func (l *Launcher) rollback(cfg *config.Config, snap *snapshot.Snapshot, cause *ExitError) error {
	l.Logger.Debug("rolling back", zap.Error(cause))
	ux.Fatal(cause.Message)

	err := os.RemoveAll(cfg.ConfigDirPath())
	if err == nil {
		err = snap.Restore()
	}
	if err != nil {
		ux.Fatal(fmt.Sprintf("FATAL: Could not restore the project; the backup is in %s: %v", snap.Dir(), err))
		cause.Err = errors.Join(cause.Err, err)
		return cause
	}
	ux.RolledBack(cfg.ProjectRoot)
	return cause
}

// cleanup removes the project's original top-level entries, keeping the
// scaffold directories, the tool executable if it lives in the project, and
// anything created during the attempt, then discards the snapshot.
func cleanup(cfg *config.Config, snap *snapshot.Snapshot, toolPath string) error {
	keep := map[string]bool{
		cfg.ConfigDir: true,
		cfg.WebRoot:   true,
	}
	if name, ok := topLevelName(cfg.ProjectRoot, toolPath); ok {
		keep[name] = true
	}
	for _, name := range snap.Entries() {
		if keep[name] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(cfg.ProjectRoot, name)); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return snap.Discard()
}

// topLevelName returns the first path element of path relative to root when
// path lies inside root.
func topLevelName(root, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return strings.SplitN(rel, string(filepath.Separator), 2)[0], true
}

func (l *Launcher) startAndLaunch(ctx context.Context, began time.Time) error {
	ux.Step("Checking site status")
	res, err := l.Tool.HealthCheck(ctx)
	switch {
	case err != nil:
		ux.Warn("drush status could not run: %v", err)
	case res.ExitCode != 0:
		l.logFailure("drush status", res)
		ux.Warn("drush status exited %d; starting anyway", res.ExitCode)
	}

	ux.Step("Starting DDEV")
	if err := l.call(ctx, "start", l.Tool.Start); err != nil {
		return err
	}
	ux.Step("Launching Drupal CMS")
	if err := l.call(ctx, "launch", l.Tool.Launch); err != nil {
		return err
	}

	ux.Ready(time.Since(began))
	return nil
}

// call runs one start/launch step, propagating the tool's exit code.
func (l *Launcher) call(ctx context.Context, name string, fn func(context.Context) (*devtool.Result, error)) error {
	res, err := fn(ctx)
	if err != nil {
		msg := fmt.Sprintf("FATAL: ddev %s could not run.", name)
		ux.Fatal(msg)
		return exitErr(ExitSetupFailed, msg, err)
	}
	if res.ExitCode != 0 {
		l.logFailure(name, res)
		msg := fmt.Sprintf("ddev %s failed.", name)
		ux.Fatal(msg)
		return exitErr(res.ExitCode, msg, nil)
	}
	l.Logger.Debug("step done", zap.String("step", name))
	return nil
}

// logFailure records what a failed tool step printed.
func (l *Launcher) logFailure(step string, res *devtool.Result) {
	if res == nil {
		return
	}
	l.Logger.Debug("tool step failed",
		zap.String("step", step),
		zap.Int("exit_code", res.ExitCode),
		zap.String("output", res.Output))
}
