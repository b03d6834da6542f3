// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"context"
	"errors"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, ambiguous reference).
	UserError = 1

	// ConfigError indicates an invalid or unreadable configuration.
	ConfigError = 2

	// StorageError indicates the task list could not be read or written.
	StorageError = 3

	// Interrupted indicates the run was cancelled by a signal.
	Interrupted = 130
)

// Error attaches an exit code to an error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err tagged with code. A nil err stays nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Of returns the exit code for err. Untagged errors are user errors.
func Of(err error) int {
	if err == nil {
		return Success
	}
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted
	}
	return UserError
}
