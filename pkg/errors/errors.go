// Package errors provides structured error types for benchviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the render service and the core
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The rendering core fails with one of three codes:
//   - CONFIG_ERROR: malformed or missing visualization table columns
//   - MISSING_DATA: a condition, replicate or series is absent from the results store
//   - UNSUPPORTED_PLOT_TYPE: a plot kind outside the closed set
//
// Each has a typed error ([ConfigError], [MissingDataError],
// [UnsupportedPlotTypeError]) that carries the offending keys.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	var missing *errors.MissingDataError
//	if stderrors.As(err, &missing) {
//	    fmt.Println(missing.Path())
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering core
	ErrCodeConfig              Code = "CONFIG_ERROR"
	ErrCodeMissingData         Code = "MISSING_DATA"
	ErrCodeUnsupportedPlotType Code = "UNSUPPORTED_PLOT_TYPE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Benchmark jobs
	ErrCodeJobFailed Code = "JOB_FAILED"

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

// coder is implemented by the typed errors below.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It walks the error chain looking for an *Error or a typed error with a
// matching code.
func Is(err error, code Code) bool {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Code == code {
				return true
			}
		case coder:
			if e.Code() == code {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// ConfigError reports a malformed or missing visualization table column.
type ConfigError struct {
	Column string // Column name, empty when the problem is table-wide
	Row    int    // Zero-based data row, -1 for header problems
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Column != "" && e.Row >= 0:
		return fmt.Sprintf("config error: row %d column %q: %s", e.Row, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("config error: column %q: %s", e.Column, e.Reason)
	default:
		return "config error: " + e.Reason
	}
}

// Code returns ErrCodeConfig.
func (e *ConfigError) Code() Code { return ErrCodeConfig }

// NewConfigError creates a ConfigError for a header-level problem.
func NewConfigError(column, format string, args ...any) *ConfigError {
	return &ConfigError{Column: column, Row: -1, Reason: fmt.Sprintf(format, args...)}
}

// MissingDataError reports a lookup miss in the results store.
// Fields after the first missing key are left empty.
type MissingDataError struct {
	Condition string
	Replicate string
	Series    string
}

// Path returns the key path that was requested, joined with "/".
func (e *MissingDataError) Path() string {
	parts := []string{e.Condition}
	if e.Replicate != "" {
		parts = append(parts, e.Replicate)
	}
	if e.Series != "" {
		parts = append(parts, e.Series)
	}
	return strings.Join(parts, "/")
}

// Error implements the error interface.
func (e *MissingDataError) Error() string {
	return "missing data: " + e.Path()
}

// Code returns ErrCodeMissingData.
func (e *MissingDataError) Code() Code { return ErrCodeMissingData }

// UnsupportedPlotTypeError reports a plot kind outside Scatter, Line and Bar.
type UnsupportedPlotTypeError struct {
	Kind string
	Row  int // Zero-based table row, -1 if unknown
}

// Error implements the error interface.
func (e *UnsupportedPlotTypeError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("unsupported plot type %q in row %d", e.Kind, e.Row)
	}
	return fmt.Sprintf("unsupported plot type %q", e.Kind)
}

// Code returns ErrCodeUnsupportedPlotType.
func (e *UnsupportedPlotTypeError) Code() Code { return ErrCodeUnsupportedPlotType }
