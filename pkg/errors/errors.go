// Package errors provides structured error types for PegPlanner.
//
// Rejected placements are not errors: the layout and placement packages
// report them as booleans. The codes here cover the cases a caller has to
// react to:
//   - UNKNOWN_*: a catalog id that does not resolve
//   - ITEM_NOT_FOUND: a placed-item id that does not resolve
//   - STORE_ERROR, EXPORT_FAILED: adapter failures
//   - INVALID_*: malformed input or configuration
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownTemplate, "unknown template %q", id)
//	if errors.Is(err, errors.ErrCodeUnknownTemplate) {
//	    // Handle missing catalog entry
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "save layout %s", key)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Catalog resolution errors
	ErrCodeUnknownTemplate  Code = "UNKNOWN_TEMPLATE"
	ErrCodeUnknownBoardSize Code = "UNKNOWN_BOARD_SIZE"
	ErrCodeUnknownColor     Code = "UNKNOWN_COLOR"
	ErrCodeUnknownTexture   Code = "UNKNOWN_TEXTURE"

	// Layout errors
	ErrCodeItemNotFound Code = "ITEM_NOT_FOUND"
	ErrCodeDragActive   Code = "DRAG_ACTIVE"

	// Adapter errors
	ErrCodeStore        Code = "STORE_ERROR"
	ErrCodeExportFailed Code = "EXPORT_FAILED"

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

// IsUnknownID reports whether err is any of the catalog or item lookup failures.
func IsUnknownID(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownTemplate, ErrCodeUnknownBoardSize, ErrCodeUnknownColor,
		ErrCodeUnknownTexture, ErrCodeItemNotFound:
		return true
	}
	return false
}
