// Package errors provides structured error types for the showtimes service.
// Every error carries a category, code, message and retryable flag so callers
// can classify failures without string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by the layer that raised them.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes
	CodeMissingSearchTerm = "MISSING_SEARCH_TERM"
	CodeInvalidRequest    = "INVALID_REQUEST"

	// Storage codes
	CodeScanFailed   = "SCAN_FAILED"
	CodeDecodeFailed = "DECODE_FAILED"
	CodeClientSetup  = "CLIENT_SETUP"

	// Config codes
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeConfigRead    = "CONFIG_READ"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// ShowtimesError is the structured error type used throughout the service.
type ShowtimesError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *ShowtimesError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ShowtimesError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *ShowtimesError) Is(target error) bool {
	var t *ShowtimesError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new ShowtimesError.
func New(category ErrorCategory, code, message string) *ShowtimesError {
	return &ShowtimesError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new ShowtimesError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *ShowtimesError {
	return &ShowtimesError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *ShowtimesError) WithDetails(details map[string]interface{}) *ShowtimesError {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
// The flag is advisory: the service itself never retries.
func IsRetryable(err error) bool {
	var se *ShowtimesError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a ShowtimesError.
func GetCategory(err error) ErrorCategory {
	var se *ShowtimesError
	if errors.As(err, &se) {
		return se.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a ShowtimesError.
func GetCode(err error) string {
	var se *ShowtimesError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// isRetryable reports whether a category/code pair describes a transient failure.
func isRetryable(category ErrorCategory, code string) bool {
	return category == ErrCategoryStorage && code == CodeScanFailed
}

// Convenience constructors for common errors.

func NewValidationError(code, message string) *ShowtimesError {
	return New(ErrCategoryValidation, code, message)
}

func NewStorageError(code, message string, cause error) *ShowtimesError {
	return Wrap(ErrCategoryStorage, code, message, cause)
}

func NewConfigError(code, message string, cause error) *ShowtimesError {
	return Wrap(ErrCategoryConfig, code, message, cause)
}

func NewInternalError(message string, cause error) *ShowtimesError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
