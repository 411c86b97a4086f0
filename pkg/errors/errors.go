// Package errors provides coded errors shared by the rootfront CLI and API.
//
// A [Code] classifies a failure once, where it happens. The CLI prints
// [UserMessage]; the HTTP server maps [GetCode] to a status.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "samples must be positive, got %d", n)
//	err = errors.Wrap(errors.ErrCodeInvalidGraph, tree.ErrCycle, "validate %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidGraph) { ... }
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a machine-readable failure class.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeInvalidWeights Code = "INVALID_WEIGHTS"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeCanceled marks work abandoned because its context ended.
	ErrCodeCanceled Code = "CANCELED"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Error carries a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Canceled tags context cancellation and deadline errors with
// [ErrCodeCanceled]. Other errors, and nil, pass through unchanged.
func Canceled(err error, what string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if Is(err, ErrCodeCanceled) {
			return err
		}
		return Wrap(ErrCodeCanceled, err, "%s canceled", what)
	}
	return err
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the error text without code prefixes, followed by the
// messages of wrapped causes.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
