// Package common defines the shared error taxonomy of the attendance
// service. Every failure that reaches the request boundary wraps exactly one
// of the sentinels below, so transports can classify with errors.Is and the
// wrapped message is safe to show to the caller.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks malformed, missing or out-of-order input.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a state-transition precondition violation
	// (duplicate session, overlapping break, punch out of order).
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a reference to a row that does not exist.
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Conflictf wraps ErrConflict with a caller-facing message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// NotFoundf wraps ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Message strips the sentinel prefix from a wrapped taxonomy error, leaving
// the caller-facing text. Errors outside the taxonomy are returned verbatim.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrNotFound} {
		if !errors.Is(err, sentinel) {
			continue
		}
		if msg, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
			return msg
		}
		return sentinel.Error()
	}
	return err.Error()
}
