package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness. Only the
// Message field is ever serialized to clients; Code and Status drive
// logging and response mapping.
type Error struct {
	Code    string `json:"-"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios. The auth endpoints deliberately
// answer 400 for bad credentials and duplicate accounts, with generic
// messages that do not distinguish unknown emails from wrong passwords.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "All fields are required")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusBadRequest, "Invalid credentials")
	ErrDuplicateAccount   = New("DUPLICATE_ACCOUNT", http.StatusBadRequest, "User already exists")
	ErrInvalidResetToken  = New("INVALID_RESET_TOKEN", http.StatusBadRequest, "Invalid or expired token")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Authentication required")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "Forbidden")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "Resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "Conflict")
	ErrDelivery           = New("DELIVERY_FAILED", http.StatusInternalServerError, "Email delivery failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "Server error")
)

// ErrCacheMiss signals a cache lookup found no entry. Callers fall back to
// the source of truth; it never reaches an HTTP response.
var ErrCacheMiss = New("CACHE_MISS", http.StatusInternalServerError, "cache miss")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
