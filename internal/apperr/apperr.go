// Package apperr defines the error taxonomy of the service edge. Every
// boundary failure is translated into one of these kinds before it
// reaches a caller; internal pure functions are expected not to fail on
// validated input.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an error for the caller.
type Kind int

const (
	// Unauthorized: no identity. Never retried.
	Unauthorized Kind = iota
	// Throttled: rate limit hit. Retry after the given duration.
	Throttled
	// ValidationFailed: malformed or structurally invalid input. Never retried.
	ValidationFailed
	// GenerationFailed: the generation boundary errored or returned
	// content failing schema validation. Recoverable by user retry.
	GenerationFailed
	// NotFound: requested record absent. A normal empty outcome.
	NotFound
	// PersistenceFailed: the store errored, or stored bytes are corrupt.
	PersistenceFailed
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Throttled:
		return "throttled"
	case ValidationFailed:
		return "validation_failed"
	case GenerationFailed:
		return "generation_failed"
	case NotFound:
		return "not_found"
	case PersistenceFailed:
		return "persistence_failed"
	}
	return "unknown"
}

// Error carries a kind, a caller-visible message, an optional
// retry-after hint (Throttled only) and the underlying cause.
type Error struct {
	Kind       Kind
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Throttle builds a Throttled error with a retry-after hint.
func Throttle(retryAfter time.Duration) *Error {
	return &Error{Kind: Throttled, Message: "rate limit exceeded", RetryAfter: retryAfter}
}

// KindOf extracts the kind of err, or PersistenceFailed as the generic
// fallback for unclassified failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return PersistenceFailed
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
