package build

import (
	"errors"
	"fmt"
)

// Failure kinds. Every typed error below unwraps to exactly one of them.
var (
	// ErrSourceResolution indicates the provider could not resolve sources or
	// class path entries.
	ErrSourceResolution = errors.New("source resolution failed")

	// ErrRendering indicates a template was missing or failed to execute.
	ErrRendering = errors.New("rendering failed")

	// ErrIO indicates a descriptor could not be opened, written or closed.
	ErrIO = errors.New("i/o failed")
)

// ComponentError is implemented by all errors tied to a single component.
type ComponentError interface {
	error

	// Component returns the key of the component where the error occurred.
	Component() string
}

// SourceResolutionError indicates the provider failed for a component.
type SourceResolutionError struct {
	// ComponentKey is the vendor/name of the component.
	ComponentKey string

	// Cause is the underlying provider error.
	Cause error
}

func (e *SourceResolutionError) Error() string {
	return fmt.Sprintf("component %q: resolving sources: %v", e.ComponentKey, e.Cause)
}

func (e *SourceResolutionError) Component() string {
	return e.ComponentKey
}

func (e *SourceResolutionError) Unwrap() []error {
	return []error{ErrSourceResolution, e.Cause}
}

// RenderError indicates a template failed to render.
type RenderError struct {
	// ComponentKey is the vendor/name of the component, empty for the
	// aggregate descriptor.
	ComponentKey string

	// Template is the template that failed.
	Template string

	// Cause is the underlying error.
	Cause error
}

func (e *RenderError) Error() string {
	if e.ComponentKey == "" {
		return fmt.Sprintf("template %q: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("component %q, template %q: %v", e.ComponentKey, e.Template, e.Cause)
}

func (e *RenderError) Component() string {
	return e.ComponentKey
}

func (e *RenderError) Unwrap() []error {
	return []error{ErrRendering, e.Cause}
}

// IOError indicates a descriptor file could not be written.
type IOError struct {
	// ComponentKey is the vendor/name of the component, empty for the
	// aggregate descriptor.
	ComponentKey string

	// Path is the descriptor path.
	Path string

	// Op is the failed operation: open, write or close.
	Op string

	// Cause is the underlying error.
	Cause error
}

func (e *IOError) Error() string {
	if e.ComponentKey == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("component %q: %s %s: %v", e.ComponentKey, e.Op, e.Path, e.Cause)
}

func (e *IOError) Component() string {
	return e.ComponentKey
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Cause}
}
