package devtool

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ContainerEnvVar is set by DDEV inside its containers.
const ContainerEnvVar = "IS_DDEV_PROJECT"

// Result holds the outcome of one tool invocation.
type Result struct {
	ExitCode int
	Output   string
}

// DevTool is the set of dev-environment operations the launcher drives.
// Tests substitute a scripted fake.
type DevTool interface {
	// Available returns the resolved path of the tool binary.
	Available() (string, error)
	Configure(ctx context.Context, docroot string) (*Result, error)
	InstallDependencies(ctx context.Context, target string) (*Result, error)
	HealthCheck(ctx context.Context) (*Result, error)
	Start(ctx context.Context) (*Result, error)
	Launch(ctx context.Context) (*Result, error)
}

// DDEV runs the ddev binary as a subprocess in the project root.
type DDEV struct {
	Binary string
	Dir    string

	ProjectType    string
	PHPVersion     string
	ToolConstraint string

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger

	resolved string
	baseEnv  []string // lazily populated os.Environ minus the container signal
}

// Available resolves the binary on PATH. The result is cached so later
// invocations keep using the same executable.
func (d *DDEV) Available() (string, error) {
	if d.resolved != "" {
		return d.resolved, nil
	}
	path, err := Lookup(d.Binary)
	if err != nil {
		return "", err
	}
	d.resolved = path
	return path, nil
}

// Configure runs "ddev config" for a Drupal project with the given docroot.
func (d *DDEV) Configure(ctx context.Context, docroot string) (*Result, error) {
	args := []string{"config"}
	if d.ProjectType != "" {
		args = append(args, "--project-type="+d.ProjectType)
	}
	if docroot != "" {
		args = append(args, "--docroot="+docroot)
	}
	if d.PHPVersion != "" {
		args = append(args, "--php-version="+d.PHPVersion)
	}
	if d.ToolConstraint != "" {
		args = append(args, "--ddev-version-constraint="+d.ToolConstraint)
	}
	return d.run(ctx, args...)
}

// InstallDependencies runs "ddev composer create <target>".
func (d *DDEV) InstallDependencies(ctx context.Context, target string) (*Result, error) {
	args := []string{"composer", "create"}
	if target != "" {
		args = append(args, target)
	}
	return d.run(ctx, args...)
}

// HealthCheck asks drush whether the site bootstraps.
func (d *DDEV) HealthCheck(ctx context.Context) (*Result, error) {
	return d.run(ctx, "drush", "status", "--field=bootstrap")
}

func (d *DDEV) Start(ctx context.Context) (*Result, error) {
	return d.run(ctx, "start")
}

func (d *DDEV) Launch(ctx context.Context) (*Result, error) {
	return d.run(ctx, "launch")
}

func (d *DDEV) run(ctx context.Context, args ...string) (*Result, error) {
	bin, err := d.Available()
	if err != nil {
		return nil, err
	}
	d.logger().Debug("invoking tool", zap.String("binary", bin), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = d.Dir
	cmd.Env = d.env()

	var captured strings.Builder
	cmd.Stdout = io.MultiWriter(d.stdout(), &captured)
	cmd.Stderr = io.MultiWriter(d.stderr(), &captured)

	code, err := exitCode(cmd.Run())
	if err != nil {
		return nil, err
	}
	d.logger().Debug("tool exited", zap.Strings("args", args), zap.Int("code", code))
	return &Result{ExitCode: code, Output: captured.String()}, nil
}

// env returns the child environment: the launcher's own environment with the
// container signal stripped.
func (d *DDEV) env() []string {
	if d.baseEnv == nil {
		for _, e := range os.Environ() {
			key := strings.SplitN(e, "=", 2)[0]
			if key == ContainerEnvVar {
				continue
			}
			d.baseEnv = append(d.baseEnv, e)
		}
	}
	env := make([]string, len(d.baseEnv))
	copy(env, d.baseEnv)
	return env
}

func (d *DDEV) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *DDEV) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

func (d *DDEV) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}
