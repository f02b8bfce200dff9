// Package apperr defines the error taxonomy shared by all services, plus
// the single mapping from errors to HTTP status codes. Workflow code
// returns these typed errors; the handler layer maps them to responses.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("insufficient permissions")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrCapacityExceeded      = errors.New("event is full")
	ErrDuplicateRegistration = errors.New("already registered for this event")
)

// ValidationError carries one message per violated field so clients can
// surface every problem at once instead of fixing them one by one.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// NewValidation returns nil when no fields were violated, so callers can
// accumulate into a map and return the result unconditionally.
func NewValidation(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// InvalidStateError signals an operation not permitted in the entity's
// current state (e.g. registering after the deadline).
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// StatusCode maps a workflow error to its stable HTTP status.
// Unclassified errors are internal and must not leak detail to clients.
func StatusCode(err error) int {
	var ve *ValidationError
	var ise *InvalidStateError
	switch {
	case errors.As(err, &ve), errors.As(err, &ise),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrDuplicateRegistration):
		return 400
	case errors.Is(err, ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	default:
		return 500
	}
}

// IsInternal reports whether err falls outside the client-facing taxonomy.
func IsInternal(err error) bool {
	return StatusCode(err) == 500
}
