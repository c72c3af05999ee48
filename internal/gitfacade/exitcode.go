package gitfacade

import (
	"errors"
	"os/exec"
)

// exitCode extracts an exit code from a command error, the same helper
// shape used throughout this codebase's subprocess plumbing: (code, nil)
// for an ExitError, (0, err) for anything else, (0, nil) for nil.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
