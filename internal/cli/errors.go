package cli

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates no trip matched an id or id prefix.
type NotFoundError struct {
	ID string // the id or prefix that was looked up
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("trip %s not found", e.ID)
}

// AmbiguousIDError indicates an id prefix matched more than one trip.
type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous id %q matches: %s", e.Prefix, strings.Join(e.Matches, ", "))
}

// ValidationError indicates a bad flag or argument value.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// HintError attaches a suggestion for how to proceed to an error.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n" + e.Hint
}

func (e *HintError) Unwrap() error { return e.Err }

// WithHint wraps err with a hint. A nil err stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output; a hint,
// if any, follows on its own line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var he *HintError
	if errors.As(err, &he) && he.Hint != "" {
		return "error: " + he.Err.Error() + "\n" + Gray(he.Hint)
	}
	return "error: " + err.Error()
}
