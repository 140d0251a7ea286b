// Package apperr defines the error kinds surfaced by the API and the HTTP
// status each one maps to.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindGeneration     Kind = "generation"
	KindStore          Kind = "store"
	KindRateLimited    Kind = "rate_limited"
	KindReadOnly       Kind = "read_only"
)

// Error carries a caller-safe Message; Err holds the cause for logs only.
type Error struct {
	Kind    Kind
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

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization, KindReadOnly:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func Authentication(message string, cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Err: cause}
}

// Authorization is returned when a path userId does not match the token subject.
func Authorization() *Error {
	return &Error{Kind: KindAuthorization, Message: "Unauthorized"}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

func Generation(message string, cause error) *Error {
	return &Error{Kind: KindGeneration, Message: message, Err: cause}
}

func Store(message string, cause error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: cause}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "Too many requests"}
}

func ReadOnly() *Error {
	return &Error{Kind: KindReadOnly, Message: "Read-only mode: only GET requests are allowed"}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Public returns the status and caller-safe message for any error. Errors
// outside the taxonomy become a generic 500.
func Public(err error) (int, string) {
	if e, ok := As(err); ok {
		return e.Status(), e.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}
