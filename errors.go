package fileconf

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Load, Check and the bundled rules
// is an *Error whose Kind is one of these, so callers can branch with
// errors.Is(err, ErrParse) and friends.
var (
	// ErrFileNotFound indicates the configuration file could not be opened.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrParse indicates the file could not be read, its extension is not a
	// supported format, or its content did not decode into the target type.
	ErrParse = errors.New("parse error")
	// ErrMissingField indicates a required field has no value.
	ErrMissingField = errors.New("missing required field")
	// ErrEnvVar indicates the environment override phase failed, usually
	// because an overridden value no longer fits the target type.
	ErrEnvVar = errors.New("environment variable error")
	// ErrValidation indicates a validation rule rejected the configuration.
	ErrValidation = errors.New("validation error")
)

// Error is the error type returned by this package.
type Error struct {
	Kind error  // one of the Err* sentinels
	Msg  string // human readable detail, may be empty
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// ValidationError builds an ErrValidation error. Use it from Validate methods
// so callers can tell rule failures apart from load failures.
func ValidationError(format string, args ...any) error {
	return newError(ErrValidation, nil, format, args...)
}

// MissingFieldError builds an ErrMissingField error for the named field.
func MissingFieldError(field string) error {
	return &Error{Kind: ErrMissingField, Msg: field}
}
