// Package errors defines the application error taxonomy. Every failure
// that crosses a use-case boundary is one of these values, so delivery
// layers can map errors to transport codes without inspecting internals.
package errors

import (
	"net/http"

	"pulpit/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types. Login-attempt failures (user not found, bad
// password, duplicate account) are client errors on the request itself and
// map to 400, not 401; 401 is reserved for existing-session failures
// raised by the auth gates.
var (
	ErrUserNotFound = NewBaseError(
		http.StatusBadRequest,
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"User already exists",
	)

	ErrInvalidPassword = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PASSWORD",
		"Invalid password",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
	)

	ErrUserLookupNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_LOOKUP_NOT_FOUND",
		"User not found",
	)

	ErrHashingFailed = NewBaseError(
		http.StatusInternalServerError,
		"HASHING_FAILED",
		"Password processing error",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Unknown error",
	)
)

// NewDatabaseExecuteError wraps a raw datastore error into the generic
// internal failure. The cause stays in the chain for server-side logs;
// callers surface only ErrInternal's message.
func NewDatabaseExecuteError(err error, message string) error {
	return errors.Wrap(errors.Join(ErrInternal, err), message)
}
