package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given application error code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeInvalidRow      = "INVALID_ROW"
	CodeMissingColumn   = "MISSING_COLUMN"
	CodeEmptyInput      = "EMPTY_INPUT"
	CodeUnsupportedFile = "UNSUPPORTED_FILE"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common error constructors

// InvalidRow marks a price-list row with a malformed Clave or Precio.
func InvalidRow(message string) *AppError {
	return New(CodeInvalidRow, message)
}

// MissingColumn marks an input file that lacks a required column.
func MissingColumn(column, file string) *AppError {
	return New(CodeMissingColumn, fmt.Sprintf("required column %q not found in %s", column, file))
}

// EmptyInput marks a comparison request with nothing to compare.
func EmptyInput(message string) *AppError {
	return New(CodeEmptyInput, message)
}

// UnsupportedFile marks an upload with a file type the reader cannot parse.
func UnsupportedFile(message string) *AppError {
	return New(CodeUnsupportedFile, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
