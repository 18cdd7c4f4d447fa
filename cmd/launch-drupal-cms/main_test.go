package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/cmslaunch/internal/config"
	"github.com/jorge-barreto/cmslaunch/internal/launcher"
	"github.com/jorge-barreto/cmslaunch/internal/ux"
)

func runBuildConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var (
		got    config.Config
		gotErr error
	)
	cmd := &cli.Command{
		Name:  "launch-drupal-cms",
		Flags: commonFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			got, gotErr = buildConfig(c)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"launch-drupal-cms"}, args...)); err != nil {
		t.Fatal(err)
	}
	return got, gotErr
}

func TestBuildConfig_Defaults(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "")
	t.Setenv("COMPOSER_CREATE", "")
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", "")
	root := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(prev) })

	cfg, err := runBuildConfig(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InContainer {
		t.Fatal("empty IS_DDEV_PROJECT must not count as in-container")
	}
	if cfg.CreateTarget != "" {
		t.Fatalf("CreateTarget = %q", cfg.CreateTarget)
	}
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
	if got != want {
		t.Fatalf("ProjectRoot = %q, want %q", got, want)
	}
	if cfg.Tool != config.DefaultTool {
		t.Fatalf("Tool = %q", cfg.Tool)
	}
}

func TestBuildConfig_Environment(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "true")
	t.Setenv("COMPOSER_CREATE", "foo/bar")
	root := t.TempDir()
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", root)

	cfg, err := runBuildConfig(t)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.InContainer {
		t.Fatal("IS_DDEV_PROJECT=true should set InContainer")
	}
	if cfg.CreateTarget != "foo/bar" {
		t.Fatalf("CreateTarget = %q", cfg.CreateTarget)
	}
	if cfg.ProjectRoot != root {
		t.Fatalf("ProjectRoot = %q, want %q", cfg.ProjectRoot, root)
	}
}

func TestBuildConfig_Flags(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "")
	t.Setenv("COMPOSER_CREATE", "")
	root := t.TempDir()

	cfg, err := runBuildConfig(t, "--project-root", root, "--create", "acme/site", "--tool", "/opt/ddev/bin/ddev")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProjectRoot != root || cfg.CreateTarget != "acme/site" || cfg.Tool != "/opt/ddev/bin/ddev" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestBuildConfig_CreateTargetVerbatim(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "")
	t.Setenv("COMPOSER_CREATE", "drupal/cms --stability=dev")
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", t.TempDir())

	cfg, err := runBuildConfig(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CreateTarget != "drupal/cms --stability=dev" {
		t.Fatalf("CreateTarget = %q", cfg.CreateTarget)
	}
}

func TestBuildConfig_InvalidIsUsageError(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "")
	t.Setenv("COMPOSER_CREATE", "")
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", t.TempDir())

	_, err := runBuildConfig(t, "--tool", "")
	var exitErr *launcher.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *launcher.ExitError, got %v", err)
	}
	if exitErr.Code != launcher.ExitUsage {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, launcher.ExitUsage)
	}
	if exitErr.Code == launcher.ExitToolMissing {
		t.Fatal("config errors must not share the tool-missing exit code")
	}
}

func runLaunch(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := ux.Out
	ux.Out = &buf
	t.Cleanup(func() { ux.Out = prev })

	cmd := &cli.Command{
		Name:   "launch-drupal-cms",
		Flags:  commonFlags(),
		Action: launchAction,
	}
	err := cmd.Run(context.Background(), append([]string{"launch-drupal-cms"}, args...))
	return buf.String(), err
}

func TestLaunch_InContainerBeatsInvalidConfig(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "true")
	t.Setenv("COMPOSER_CREATE", "drupal/cms --stability=dev")
	root := t.TempDir()
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", root)

	out, err := runLaunch(t, "--tool", "")
	if err != nil {
		t.Fatalf("in-container run must exit 0, got %v", err)
	}
	if !strings.Contains(out, launcher.MsgAlreadyRunning) {
		t.Fatalf("output %q missing %q", out, launcher.MsgAlreadyRunning)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("project root was touched: %d entries", len(entries))
	}
}

func TestLaunch_InvalidConfigOutsideContainer(t *testing.T) {
	t.Setenv("IS_DDEV_PROJECT", "")
	t.Setenv("COMPOSER_CREATE", "")
	t.Setenv("DRUPAL_CMS_PROJECT_ROOT", t.TempDir())

	_, err := runLaunch(t, "--tool", " ")
	var exitErr *launcher.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != launcher.ExitUsage {
		t.Fatalf("expected usage exit code %d, got %v", launcher.ExitUsage, err)
	}
}
