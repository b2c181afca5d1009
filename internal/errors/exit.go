package errors

import "errors"

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates configuration or registry validation failed.
	ExitValidationError = 2

	// ExitPermissionDenied indicates insufficient filesystem permissions.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a file or component was not found.
	ExitNotFound = 5

	// ExitAlreadyExists indicates a file exists and --force was not given.
	ExitAlreadyExists = 6

	// ExitGenerationError indicates at least one descriptor could not be generated.
	ExitGenerationError = 7
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already rendered the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrExists):
		return ExitAlreadyExists
	case errors.Is(err, ErrGeneration):
		return ExitGenerationError
	default:
		return ExitGeneralError
	}
}
