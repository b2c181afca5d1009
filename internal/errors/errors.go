// Package errors provides sentinel errors and user-facing error details for
// the nwdi-cobertura CLI.
package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DetailError is an error rendered as a block of labelled lines for the
// terminal.
type DetailError struct {
	// Type is the error category, e.g. "validation failed".
	Type string

	// Message describes the problem.
	Message string

	// Location is the file the error refers to, if any.
	Location string

	// Field is the offending key for schema and registry errors.
	Field string

	// Context holds additional lines, printed sorted by key.
	Context map[string]string

	// Hint tells the user what to do next.
	Hint string

	// Cause is the sentinel or underlying error.
	Cause error
}

// Error renders the error as:
//
//	Error: <type>
//	  Location: <location>
//	  Field: <field>
//	  <context key>: <value>
//
//	  <message>
//
//	Hint: <hint>
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s: %s\n", label, value)
		}
	}
	field("Location", e.Location)
	field("Field", e.Field)
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		field(k, e.Context[k])
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports an invalid configuration or registry value.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError reports a missing file or component.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewExistsError reports a file that would be overwritten.
func NewExistsError(message, location, hint string) error {
	return &DetailError{
		Type:     "already exists",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrExists,
	}
}

// NewPermissionError reports a file that could not be created or written.
func NewPermissionError(message, location string, cause error) error {
	detail := &DetailError{
		Type:     "permission denied",
		Message:  message,
		Location: location,
		Hint:     "Check that the directory exists and is writable",
		Cause:    ErrPermission,
	}
	if cause != nil {
		detail.Context = map[string]string{"Cause": cause.Error()}
	}
	return detail
}

// NewGenerationError reports components whose build files could not be
// written. Context maps component keys to their failure.
func NewGenerationError(message string, context map[string]string) error {
	return &DetailError{
		Type:    "generation failed",
		Message: message,
		Context: context,
		Hint:    "Re-run with --verbose for per-component details; generation is idempotent",
		Cause:   ErrGeneration,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
