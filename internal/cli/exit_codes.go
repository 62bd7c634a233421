package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
)

// Exit codes for the draft-release CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime or configuration failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates the token, repository or ref could
	// not be resolved
	ExitMissingDependencies = 4
)

// ExitError carries an exit code for errors that were already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an ExitError with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependencies
		}
	}
	return ExitFailure
}
