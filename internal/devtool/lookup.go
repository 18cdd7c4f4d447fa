package devtool

import (
	"fmt"
	"os/exec"
)

// Lookup resolves name on PATH. A name containing a slash is checked as a
// path instead, matching exec.LookPath.
func Lookup(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}
