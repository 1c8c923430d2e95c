// Package apperr defines the error taxonomy shared by services and handlers
// and renders it as the uniform JSON error envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrTooManyRequests = errors.New("too many requests")
)

// Error pairs a taxonomy kind with a caller facing message and, optionally,
// the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthorized(message string) error { return New(ErrUnauthorized, message) }
func Forbidden(message string) error    { return New(ErrForbidden, message) }
func Conflict(message string) error     { return New(ErrConflict, message) }
func NotFound(message string) error     { return New(ErrNotFound, message) }
func Validation(message string) error   { return New(ErrValidation, message) }

var kinds = []struct {
	kind   error
	status int
	code   string
}{
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrConflict, http.StatusConflict, "CONFLICT"},
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrValidation, http.StatusBadRequest, "BAD_REQUEST"},
	{ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
}

// CodeForStatus names an HTTP status the way the envelope does.
func CodeForStatus(status int) string {
	for _, k := range kinds {
		if k.status == status {
			return k.code
		}
	}
	switch {
	case status == http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case status == http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case status >= 400 && status < 500:
		return "BAD_REQUEST"
	default:
		return "SYSTEM_ERROR"
	}
}

// Describe resolves err to the status, code and message written to the
// client. Anything outside the taxonomy is an internal error and its text is
// not exposed.
func Describe(err error) (int, string, string) {
	var ae *Error
	if errors.As(err, &ae) {
		for _, k := range kinds {
			if errors.Is(ae.Kind, k.kind) {
				return k.status, k.code, ae.Message
			}
		}
	}
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.status, k.code, k.kind.Error()
		}
	}
	return http.StatusInternalServerError, "SYSTEM_ERROR", "internal server error"
}
