package service

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed operation. Every kind is terminal.
type ErrorKind int

const (
	KindInvalidArgument ErrorKind = iota + 1
	KindNotFound
	KindForbidden
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the comment operations.
// Message is safe for callers; Err is the cause and is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) PublicMessage() string { return e.Message }

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NotFound names the missing resource, e.g. NotFound("video") -> "Video not found".
func NotFound(resource string) *Error {
	name := resource
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return &Error{Kind: KindNotFound, Message: name + " not found"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// IsKind reports whether err is a service failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
