package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error by the component it originates from.
type Kind string

const (
	KindRemote          Kind = "remote"
	KindNotFound        Kind = "not_found"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindValidation      Kind = "validation"
	KindInternal        Kind = "internal"
)

var defaultMessages = map[Kind]string{
	KindRemote:          "remote call failed",
	KindNotFound:        "not found",
	KindUnauthenticated: "no authenticated user",
	KindForbidden:       "operation not allowed for this user",
	KindConflict:        "document was modified concurrently",
	KindValidation:      "invalid input",
	KindInternal:        "unexpected failure",
}

// HTTPStatus maps the kind to the status code returned by the API.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the failure payload carried by Result. Message is never empty.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

var (
	ErrNotFound        = &Error{Kind: KindNotFound, Message: defaultMessages[KindNotFound]}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: defaultMessages[KindUnauthenticated]}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: defaultMessages[KindForbidden]}
	ErrConflict        = &Error{Kind: KindConflict, Message: defaultMessages[KindConflict]}
	ErrValidation      = &Error{Kind: KindValidation, Message: defaultMessages[KindValidation]}
)

// NewError builds an Error, falling back to the kind's default message.
func NewError(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	if message == "" {
		message = defaultMessages[KindInternal]
	}
	return &Error{Kind: kind, Message: message}
}

// WrapError builds an Error around cause, using the cause's text as the message.
func WrapError(kind Kind, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	e := NewError(kind, msg)
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// AsError converts err into an *Error. Errors that already carry a kind keep it
// (the outermost message is kept); anything else becomes a remote fault with
// the underlying message verbatim.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Error() == err.Error() {
			return e
		}
		return &Error{Kind: e.Kind, Message: NewError(e.Kind, err.Error()).Message, cause: err}
	}

	return WrapError(KindRemote, err)
}

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}
