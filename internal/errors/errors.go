// Package errors provides the application error type for the finmanager API.
// Services return AppError values so that handlers can produce consistent
// responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the internal cause to errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches any AppError with the same code, so copies made by Wrap and
// WithMessage still satisfy errors.Is against their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap copies sentinel and attaches internal as the hidden cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	e := *sentinel
	e.Internal = internal
	return &e
}

// WithMessage copies sentinel with a client-facing message override.
func WithMessage(sentinel *AppError, message string) *AppError {
	e := *sentinel
	e.Message = message
	return &e
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrRateLimited    = &AppError{Code: "RATE_LIMITED", Message: "Too many requests, please try again later", StatusCode: http.StatusTooManyRequests}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

// Resource errors.
var (
	ErrCategoryNotFound     = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCounterpartyNotFound = &AppError{Code: "COUNTERPARTY_NOT_FOUND", Message: "Counterparty not found", StatusCode: http.StatusNotFound}
)

// Log ingestion errors.
var (
	ErrInvalidLogLevel   = &AppError{Code: "INVALID_LOG_LEVEL", Message: "Invalid log level", StatusCode: http.StatusBadRequest}
	ErrInvalidLogMessage = &AppError{Code: "INVALID_LOG_MESSAGE", Message: "Message is required and must be a string", StatusCode: http.StatusBadRequest}
)
