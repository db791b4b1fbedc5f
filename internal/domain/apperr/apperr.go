// Package apperr tags domain errors with a machine-readable kind so the
// transport layer can map them to responses without knowing every sentinel.
package apperr

import "errors"

type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindInvalidInput     Kind = "invalid_input"
	KindConflict         Kind = "conflict"
	KindExpired          Kind = "expired"
	KindInvalidOperation Kind = "invalid_operation"
	KindInternal         Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid wraps a validation failure as invalid input, keeping its text as the
// message shown to the caller.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
