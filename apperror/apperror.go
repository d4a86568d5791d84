// Package apperror defines the error kinds surfaced to API callers.
package apperror

import (
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthenticated
	Forbidden
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status is the HTTP status a kind is reported with.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Unauthenticated:
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

// Error is a failure with a kind and a caller-facing detail message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Detail
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func NewValidation(detail string) *Error      { return New(Validation, detail) }
func NewUnauthenticated(detail string) *Error { return New(Unauthenticated, detail) }
func NewForbidden(detail string) *Error       { return New(Forbidden, detail) }
func NewNotFound(detail string) *Error        { return New(NotFound, detail) }
func NewConflict(detail string) *Error        { return New(Conflict, detail) }
