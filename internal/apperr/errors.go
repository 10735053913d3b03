package apperr

import (
	"errors"
	"fmt"
	"strconv"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// Kind categorizes failures crossing the host/script boundary.
type Kind int

const (
	KindRegistration Kind = iota + 1
	KindScript
	KindShapeMismatch
	KindFieldAccess
	KindTypeCoercion
)

var (
	ErrRegistration  = errors.New("registration error")
	ErrScript        = errors.New("script evaluation error")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrFieldAccess   = errors.New("field access error")
	ErrTypeCoercion  = errors.New("type coercion error")

	ErrFieldMissing   = errors.New("field not present")
	ErrDivisionByZero = errors.New("division by zero")
)

func (k Kind) sentinel() error {
	switch k {
	case KindRegistration:
		return ErrRegistration
	case KindScript:
		return ErrScript
	case KindShapeMismatch:
		return ErrShapeMismatch
	case KindFieldAccess:
		return ErrFieldAccess
	case KindTypeCoercion:
		return ErrTypeCoercion
	default:
		return nil
	}
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Error is a categorized failure. Name identifies the callback or script,
// Field the record field being decoded. Expected and Actual describe shape
// and coercion mismatches.
type Error struct {
	Kind     Kind
	Name     string
	Field    string
	Expected string
	Actual   string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case KindShapeMismatch:
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Actual)
	case KindTypeCoercion:
		msg += fmt.Sprintf(": field %q: cannot convert %s to %s", e.Field, e.Actual, e.Expected)
	case KindFieldAccess:
		msg += fmt.Sprintf(": field %q", e.Field)
	case KindRegistration:
		msg += fmt.Sprintf(": callback %q", e.Name)
	case KindScript:
		if e.Name != "" {
			msg += fmt.Sprintf(": %s", e.Name)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels, so errors.Is(err, ErrFieldAccess) holds for
// any field access error regardless of field or cause.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func NewRegistration(name string, err error) *Error {
	return &Error{Kind: KindRegistration, Name: name, Err: err}
}

func NewScript(name string, err error) *Error {
	return &Error{Kind: KindScript, Name: name, Err: err}
}

func NewShapeMismatch(expected, actual string) *Error {
	return &Error{Kind: KindShapeMismatch, Expected: expected, Actual: actual}
}

func NewFieldAccess(field string, err error) *Error {
	return &Error{Kind: KindFieldAccess, Field: field, Err: err}
}

func NewTypeCoercion(field, target, actual string) *Error {
	return &Error{Kind: KindTypeCoercion, Field: field, Expected: target, Actual: actual}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
