package ops

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no trip has the requested id.
	ErrNotFound = errors.New("trip not found")

	// ErrUnauthorized is returned when a mutation is attempted while signed out.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotReady is returned when a mutation is attempted before the
	// collection has finished loading.
	ErrNotReady = errors.New("trips are still loading")

	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrNoData is the seed reason when nothing was stored yet.
	ErrNoData = errors.New("no saved trips")

	// ErrCorrupt is the seed reason when stored trips could not be decoded.
	ErrCorrupt = errors.New("saved trips are corrupt")
)

// ValidationError lists the fields of a trip that failed validation.
type ValidationError struct {
	Fields map[string]string // field name -> problem
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid trip: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// notFound wraps ErrNotFound with the id that was looked up.
func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
