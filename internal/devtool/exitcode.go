package devtool

import (
	"errors"
	"os/exec"
	"syscall"
)

// exitCode turns the error from cmd.Run into a process exit code.
// A nil error is 0, an *exec.ExitError yields the child's code (128+signal
// when the child was killed, as a shell reports it), and anything else means
// the child never ran and is returned as an error.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code, nil
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), nil
	}
	return 1, nil
}
