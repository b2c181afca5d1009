package errors

import "errors"

// Sentinel errors. ExitCodeFromError maps each to an exit code.
var (
	// ErrValidation indicates a configuration or registry validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates a file could not be created or written.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a configuration file, registry file or component was not found.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates a file exists and overwriting was not requested.
	ErrExists = errors.New("already exists")

	// ErrGeneration indicates that one or more descriptors could not be generated.
	ErrGeneration = errors.New("generation failed")
)
