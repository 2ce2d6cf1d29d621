// Package errors provides the coded errors that end a pkgdu run.
//
// Only fatal failures carry a [Code]; per-package problems met while
// resolving dependencies (a missing package, an unresolvable dependency) are
// plain sentinel errors in the deps package and only ever reach the log as
// warnings.
//
//	err := errors.New(errors.ErrCodeInvalidPattern, "invalid glob %q", pattern)
//	if errors.Is(err, errors.ErrCodeInvalidPattern) {
//	    // bad user input
//	}
//
// [ExitCode] turns whatever a run returned into the process exit status.
package errors

import (
	"context"
	"errors"
	"fmt"
	"syscall"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Bad user input: flags, patterns, configuration files.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"

	// The pacman local database is missing, unreadable or corrupt.
	ErrCodeDatabase Code = "DATABASE_ERROR"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit statuses returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain has the given code, so an
// INVALID_CONFIG wrapping an INVALID_INPUT matches both.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps the error a run returned to the process exit status. A
// closed stdout (EPIPE) is success, since the reader simply stopped reading.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, syscall.EPIPE):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
