// Package apperr classifies domain errors so the HTTP layer can map them to
// status codes without knowing every package's sentinels.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidCredentials
	KindUnauthorized
	KindSessionExpired
	KindForbidden
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindInvalidTransition
)

// Error is a classified error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

var (
	ErrUnauthorized       = New(KindUnauthorized, "Unauthorized - No token provided")
	ErrInvalidToken       = New(KindUnauthorized, "Invalid token")
	ErrSessionExpired     = New(KindSessionExpired, "Token expired")
	ErrForbidden          = New(KindForbidden, "Forbidden - Insufficient permissions")
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")
	ErrInternal           = New(KindInternal, "internal server error")
)

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInsufficientStock, KindInvalidTransition:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized, KindSessionExpired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides the text of unclassified errors.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return ErrInternal.Message
}
