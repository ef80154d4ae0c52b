// Package apperr defines the error taxonomy shared by services and
// controllers. Services return *Error values; controllers turn them into
// HTTP responses through HTTPStatus and PublicMessage.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input for validation errors.
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind when target carries no message, so
// errors.Is(err, apperr.ErrNotFound) works for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrAuth              = &Error{Kind: KindAuth}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrStorage           = &Error{Kind: KindStorage}
)

func Validation(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Auth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidTransition(from, to string) error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot change status from %q to %q", from, to),
	}
}

// Storage wraps an unexpected persistence failure. The cause is kept for
// logging and never shown to clients.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// KindOf classifies err. Errors outside the taxonomy count as storage
// failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text safe to return to a client.
func PublicMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind == KindStorage {
		return "Server Error"
	}
	if ae.Message == "" {
		return ae.Kind.String()
	}
	return ae.Message
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Field
	}
	return ""
}
