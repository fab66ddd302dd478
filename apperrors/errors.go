package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so callers can render distinct
// messaging without string matching.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindInsufficientQuantity Kind = "insufficient_quantity"
	KindIllegalTransition    Kind = "illegal_transition"
	KindValidation           Kind = "validation"
	KindUnauthorized         Kind = "unauthorized"
	KindStorage              Kind = "storage"
	KindInternal             Kind = "internal"
)

// Error represents an application error with an HTTP status code.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds a NotFound error for a missing record.
func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// InsufficientQuantity builds the business-rule rejection raised when a
// reservation requests more than the product has available.
func InsufficientQuantity(message string) *Error {
	return New(KindInsufficientQuantity, http.StatusConflict, message, nil)
}

// IllegalTransition builds the rejection raised for a status change the
// reservation state machine does not permit.
func IllegalTransition(message string) *Error {
	return New(KindIllegalTransition, http.StatusConflict, message, nil)
}

// Validation builds a bad-request error for invalid input.
func Validation(message string, err error) *Error {
	return New(KindValidation, http.StatusBadRequest, message, err)
}

// Storage wraps an underlying persistence failure.
func Storage(message string, err error) *Error {
	return New(KindStorage, http.StatusServiceUnavailable, message, err)
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, message, err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// StatusCode returns the HTTP status for err, defaulting to 500 for
// errors that are not application errors.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
