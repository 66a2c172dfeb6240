// Package apperr defines the domain error taxonomy. Handlers map these
// to HTTP status codes with errors.Is; store-level failures pass
// through untouched.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks client-correctable input errors
	// (malformed identifier, malformed date, inverted date range).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks an absent or soft-deleted entity.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an ownership mismatch.
	ErrForbidden = errors.New("forbidden")
)

// Invalidf wraps ErrInvalidArgument with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Forbiddenf wraps ErrForbidden with a formatted message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
