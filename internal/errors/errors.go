// Package errors provides the typed error taxonomy of the ledger service.
// Every service-layer failure is an *AppError so handlers can render a
// stable code and message without leaking internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so copies
// produced by Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ledger errors.
var (
	ErrProfileNotFound        = &AppError{Code: "PROFILE_NOT_FOUND", Message: "User profile not found", StatusCode: http.StatusNotFound}
	ErrHoldingNotFound        = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
	ErrInsufficientShares     = &AppError{Code: "INSUFFICIENT_SHARES", Message: "Cannot sell more shares than are held", StatusCode: http.StatusUnprocessableEntity}
	ErrConcurrentModification = &AppError{Code: "CONCURRENT_MODIFICATION", Message: "The portfolio was modified concurrently, reload and retry", StatusCode: http.StatusConflict}
)

// Market data errors.
var (
	ErrQuoteUnavailable = &AppError{Code: "QUOTE_UNAVAILABLE", Message: "Market data is unavailable for this symbol", StatusCode: http.StatusBadGateway}
)
