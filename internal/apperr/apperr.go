package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies business errors so the API boundary can map them to
// transport status codes without string matching.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
)

// Error is a client-visible failure with a human-readable reason.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound reports a missing User, Item, Booking or Request.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Validation reports a business-rule violation.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}
