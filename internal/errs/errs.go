package errs

import (
	"errors"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	InvalidInput Kind = iota + 1
	Unauthorized
	InvalidCredentials
	Forbidden
	NotFound
	Conflict
)

// Error carries a Kind plus the machine-readable code sent on the wire.
type Error struct {
	Kind Kind
	Code string
}

func (e *Error) Error() string { return e.Code }

func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// KindOf extracts the Kind from err, or 0 if err is not a taxonomy error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps a Kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidInput:
		return http.StatusBadRequest
	case Unauthorized, InvalidCredentials:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
