// Package errors provides structured error types for ppmedit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core, the pipeline and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Fixed, user-facing messages that tests can assert on
//   - Error wrapping with context preservation
//
// # Error Categories
//
// Codes fall into three groups:
//   - Contract violations (NULL_ARGUMENT, SHAPE_INVALID, JAGGED): a caller
//     handed the core something the API forbids. These are fatal.
//   - Content failures (MALFORMED): the input is present but is not a valid
//     P3 image. These are recoverable; the caller reports and exits cleanly.
//   - Environment failures (IO_ERROR, FILE_NOT_FOUND, ...): the world got in
//     the way.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformed, "expected magic %q, got %q", "P3", tok)
//	if errors.Is(err, errors.ErrCodeMalformed) {
//	    // Report and exit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeInvalidFlag  Code = "INVALID_FLAG"

	// Contract violations
	ErrCodeNullArgument Code = "NULL_ARGUMENT"
	ErrCodeShapeInvalid Code = "SHAPE_INVALID"
	ErrCodeJagged       Code = "JAGGED"

	// Content failures
	ErrCodeMalformed Code = "MALFORMED"

	// Environment errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeAborted      Code = "ABORTED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsContractViolation reports whether err signals a programming error:
// an absent required argument or a grid that breaks the shape invariants.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeNullArgument, ErrCodeShapeInvalid, ErrCodeJagged:
		return true
	}
	return false
}
