package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
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

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")

	// ErrRemote is the single failure kind surfaced by the remote backend
	// client. The underlying transport or API error rides along as the cause;
	// retry policy belongs to the pipelines, never to the client.
	ErrRemote = New("REMOTE_FAILURE", http.StatusBadGateway, "remote backend failure")

	// ErrNoIdentity means hydration found neither a live class id nor a
	// cached one. Both pipelines are uncallable in that state.
	ErrNoIdentity = New("NO_IDENTITY", http.StatusPreconditionFailed, "no class identity available")

	// ErrDuplicateRecord marks a second progress record for the same child
	// on the same calendar date.
	ErrDuplicateRecord = New("DUPLICATE_RECORD", http.StatusConflict, "progress record already exists for child and date")
)

// Remote wraps any error as a remote backend failure.
func Remote(err error, message string) *Error {
	return Wrap(err, ErrRemote.Code, ErrRemote.Status, message)
}

// IsRemote reports whether err is (or wraps) a remote backend failure.
func IsRemote(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrRemote.Code
	}
	return false
}

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
