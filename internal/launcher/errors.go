package launcher

import "fmt"

// Process exit codes.
const (
	ExitToolMissing = 1
	ExitNotAProject = 2
	ExitSetupFailed = 3
	// ExitUsage reports an invalid launcher configuration (sysexits EX_USAGE).
	ExitUsage = 64
)

// Messages printed on the corresponding outcomes. Wording is part of the
// launcher's external contract.
const (
	MsgAlreadyRunning = "Drupal CMS is already running."
	MsgNotAProject    = "FATAL: We do not appear to be in a Drupal CMS project."
	MsgToolMissing    = "DDEV needs to be installed. Visit https://ddev.com/get-started for instructions."
	MsgConfigFailed   = "FATAL: DDEV could not be configured."
	MsgSetupFailed    = "This project does not appear to have been set up correctly with Composer."
)

// ExitError is a terminal launcher failure carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (exit %d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (exit %d)", e.Message, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitErr(code int, msg string, err error) *ExitError {
	return &ExitError{Code: code, Message: msg, Err: err}
}
