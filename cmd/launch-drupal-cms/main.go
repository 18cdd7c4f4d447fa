package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/cmslaunch/internal/config"
	"github.com/jorge-barreto/cmslaunch/internal/devtool"
	"github.com/jorge-barreto/cmslaunch/internal/launcher"
	"github.com/jorge-barreto/cmslaunch/internal/project"
	"github.com/jorge-barreto/cmslaunch/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "launch-drupal-cms",
		Usage:       "Set up and start a Drupal CMS project with DDEV",
		Description: "Run from the root of an unpacked Drupal CMS project. The first run configures DDEV and creates the project with Composer; later runs just start it.",
		Flags:       commonFlags(),
		Action:      launchAction,
		Commands: []*cli.Command{
			statusCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Code == launcher.ExitUsage {
				fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project-root",
			Usage:   "Project directory (defaults to the current directory)",
			Sources: cli.EnvVars("DRUPAL_CMS_PROJECT_ROOT"),
		},
		&cli.StringFlag{
			Name:    "in-container",
			Usage:   "Set inside the DDEV web container; the launcher then does nothing",
			Sources: cli.EnvVars(devtool.ContainerEnvVar),
		},
		&cli.StringFlag{
			Name:    "create",
			Usage:   "Composer package to create the project from",
			Sources: cli.EnvVars("COMPOSER_CREATE"),
		},
		&cli.StringFlag{
			Name:  "tool",
			Usage: "Name or path of the ddev binary",
			Value: config.DefaultTool,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Write debug logs to stderr",
		},
	}
}

func launchAction(ctx context.Context, cmd *cli.Command) error {
	// The container signal wins over everything, including a bad config.
	if config.Truthy(cmd.String("in-container")) {
		return launcher.New(config.Config{InContainer: true}, nil, nil).Run(ctx)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	tool := newTool(cfg, logger)
	err = launcher.New(cfg, tool, logger).Run(ctx)
	if err != nil {
		logger.Debug("launch failed", zap.Error(err))
	}
	return err
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether the project is set up, without changing anything",
		Flags: commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			ux.RenderStatus(project.Inspect(cfg, newTool(cfg, zap.NewNop())))
			return nil
		},
	}
}

func buildConfig(cmd *cli.Command) (config.Config, error) {
	root := cmd.String("project-root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, err
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Default(root)
	cfg.InContainer = config.Truthy(cmd.String("in-container"))
	cfg.CreateTarget = cmd.String("create")
	cfg.Tool = cmd.String("tool")
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, &launcher.ExitError{Code: launcher.ExitUsage, Message: "invalid configuration", Err: err}
	}
	return cfg, nil
}

func newTool(cfg config.Config, logger *zap.Logger) *devtool.DDEV {
	return &devtool.DDEV{
		Binary:         cfg.Tool,
		Dir:            cfg.ProjectRoot,
		ProjectType:    cfg.ProjectType,
		PHPVersion:     cfg.PHPVersion,
		ToolConstraint: cfg.ToolConstraint,
		Logger:         logger,
	}
}

// newLogger returns a development logger on stderr when debug is set and a
// no-op logger otherwise, keeping stdout for user-facing messages.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
