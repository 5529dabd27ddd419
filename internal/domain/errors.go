package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so transports can map them to a status.
type ErrorKind string

const (
	ErrNotFound        ErrorKind = "NOT_FOUND"
	ErrConflict        ErrorKind = "CONFLICT"
	ErrInvalidState    ErrorKind = "INVALID_STATE"
	ErrValidation      ErrorKind = "VALIDATION"
	ErrAuthentication  ErrorKind = "AUTHENTICATION"
	ErrAuthorization   ErrorKind = "AUTHORIZATION"
	ErrExternalService ErrorKind = "EXTERNAL_SERVICE"
)

// Error is a user-facing domain error carrying a stable kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }

func InvalidState(format string, args ...any) error {
	return newError(ErrInvalidState, format, args...)
}

func Validation(format string, args ...any) error { return newError(ErrValidation, format, args...) }

func Authentication(format string, args ...any) error {
	return newError(ErrAuthentication, format, args...)
}

func Authorization(format string, args ...any) error {
	return newError(ErrAuthorization, format, args...)
}

// ExternalService wraps a failure of a remote collaborator.
func ExternalService(service string, err error) error {
	return &Error{Kind: ErrExternalService, Message: service + " unavailable", Err: err}
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
