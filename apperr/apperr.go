package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure so handlers can map it to a
// status code without string matching.
type Kind int

const (
	// KindInternal is any failure not covered by the taxonomy below.
	KindInternal Kind = iota
	// KindNotFound means the resource id has no row.
	KindNotFound
	// KindForbidden means the acting user does not own the required role
	// on the resource.
	KindForbidden
	// KindInvalidState means a lifecycle/status precondition was violated
	// (wrong stage, duplicate action).
	KindInvalidState
	// KindValidation means the request payload itself is malformed
	// (missing field, non-positive amount).
	KindValidation
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or KindInternal for anything
// that did not originate here (driver errors, context cancellation).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool    { return KindOf(err) == KindForbidden }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
