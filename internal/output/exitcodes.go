package output

import (
	"errors"

	"github.com/gorewood/gitcmd"
)

// Exit codes:
// 0 = Success, repository clean / no findings
// 1 = User error (bad args, not a repository)
// 2 = System error (git failed, killed, timed out, I/O error)
// 3 = Findings (dirty working tree, integrity problems)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitFindings    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, running outside a repository.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: git invocation failures, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewFindingsError creates an error reporting findings (exit code 3).
// Use for: uncommitted changes, fsck problems.
func NewFindingsError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFindings,
		Message: message,
	}
}

// FromGitError maps library errors onto CLI exit codes. Argument problems
// are the user's fault; everything else that went wrong while driving git is
// a system error.
func FromGitError(err error) *ExitError {
	var argErr *gitcmd.ArgumentError
	if errors.As(err, &argErr) {
		return &ExitError{Code: ExitUserError, Message: argErr.Msg, Cause: err}
	}
	return &ExitError{Code: ExitSystemError, Message: err.Error(), Cause: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
