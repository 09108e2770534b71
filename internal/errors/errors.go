package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeLoad        ErrorType = "LOAD"
	ErrTypeNetwork     ErrorType = "NETWORK"
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeEmptyResult ErrorType = "EMPTY_RESULT"
	ErrTypeEmptyTable  ErrorType = "EMPTY_TABLE"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeConfig      ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewLoadError reports a fatal source load failure: the fetch failed or
// every candidate encoding was rejected. No partial table exists.
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause)
}

// NewNetworkError creates a network-related error
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNetwork, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewEmptyResultError reports that the current filter selection matched
// no rows. Not fatal: callers surface it as a neutral no-data state.
func NewEmptyResultError(stage string) *AppError {
	return NewAppError(ErrTypeEmptyResult, fmt.Sprintf("no rows after %s", stage), nil).
		WithContext("stage", stage)
}

// NewEmptyTableError reports a summary computation over zero rows. The
// empty-result check upstream should make this unreachable, so treat it
// as a contract violation.
func NewEmptyTableError(message string) *AppError {
	return NewAppError(ErrTypeEmptyTable, message, nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsEmptyResult reports whether err is the non-fatal empty selection state.
func IsEmptyResult(err error) bool {
	return IsType(err, ErrTypeEmptyResult)
}
