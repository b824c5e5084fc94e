// Package errors provides structured error types for the cafeplan application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout core reports four kinds of failure:
//   - MALFORMED_SIZE: a dimension string could not be parsed
//   - VALIDATION_ERROR: a room, furniture or gap value is out of range
//   - PACKING_ERROR: the unit does not fit or the reserved zone blocks the sweep
//   - INVALID_ORIENTATION: an orientation or rotation angle outside 0/90/180/270
//
// The remaining codes belong to the outer layers (parameter files, sinks,
// design storage).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "room width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedSize, origErr, "parse %q", s)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout core errors
	ErrCodeMalformedSize      Code = "MALFORMED_SIZE"
	ErrCodeValidation         Code = "VALIDATION_ERROR"
	ErrCodePacking            Code = "PACKING_ERROR"
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidUnit   Code = "INVALID_UNIT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"

	// Resource errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeDesignNotFound Code = "DESIGN_NOT_FOUND"
	ErrCodeDesignExpired  Code = "DESIGN_EXPIRED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// HTTPStatus maps an error code to the HTTP status the API responds with.
// Unknown codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeMalformedSize, ErrCodeValidation, ErrCodeInvalidInput,
		ErrCodeInvalidUnit, ErrCodeInvalidFormat, ErrCodeInvalidStyle:
		return http.StatusBadRequest
	case ErrCodePacking:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeDesignNotFound:
		return http.StatusNotFound
	case ErrCodeDesignExpired:
		return http.StatusGone
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
