// Package errors provides consolidated error definitions for tickstore.
//
// This package provides:
// - Sentinel errors for all error conditions
// - Error category checking functions
// - Error wrapping utilities
//
// The store distinguishes two classes of contract violations: invalid
// arguments (bad inputs to Insert/Query) and invalid state (iterator
// operations outside the positioned state). Both are programmer errors
// surfaced immediately to the caller, never retried internally.
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// Invalid argument errors
	ErrNegativeTimestamp = errors.New("timestamp must be non-negative")
	ErrInvalidRange      = errors.New("end must exceed start")
	ErrBadArgument       = errors.New("bad argument")

	// Invalid state errors
	ErrInvalidCursor  = errors.New("iterator is not positioned on an event")
	ErrIteratorClosed = errors.New("iterator is closed")

	// Not found errors
	ErrNotFound     = errors.New("not found")
	ErrTypeNotFound = errors.New("event type not found")

	// Validation errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingField  = errors.New("missing required field")

	// Shell errors
	ErrUnknownCommand = errors.New("unknown command")
)

// ============================================================================
// Helper functions for error checking
// ============================================================================

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// Join is a convenience wrapper for errors.Join
var Join = errors.Join

// New is a convenience wrapper for errors.New
var New = errors.New

// IsInvalidArgument returns true if err reports a rejected input value.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNegativeTimestamp) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrBadArgument)
}

// IsInvalidState returns true if err reports an iterator used outside the
// positioned state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidCursor) ||
		errors.Is(err, ErrIteratorClosed)
}

// IsNotFound returns true if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTypeNotFound)
}

// IsValidation returns true if err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingField)
}

// ============================================================================
// Error wrapping utilities
// ============================================================================

// Wrap wraps an error with a message.
// Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with a formatted message.
// Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(fmt.Sprintf(format, args...)+": %w", err)
}
