// Package apperr holds the error kinds shared by every aggregate. Domain
// packages wrap one of these kinds in their own sentinels so callers can
// branch with errors.Is on either the sentinel or the kind.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAlreadySettled = errors.New("already settled")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrStorage        = errors.New("storage error")
)

// Kind wraps kind with a message, e.g. Kind(ErrNotFound, "loan not found").
func Kind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Validation builds a validation error with a formatted message.
func Validation(format string, args ...any) error {
	return Kind(ErrValidation, fmt.Sprintf(format, args...))
}

// Storage marks err as a persistence failure. nil stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
