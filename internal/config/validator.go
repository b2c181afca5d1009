package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
)

//go:embed schema.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks validation errors for exit code mapping.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	root := ctx.CompileBytes(configSchemaCUE, cue.Filename("schema.cue"))
	if root.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", root.Err())
	}

	schema := root.LookupPath(cue.ParsePath("#Config"))
	if !schema.Exists() {
		return nil, fmt.Errorf("schema does not define #Config")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	value := v.ctx.Encode(cfg)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		errs = append(errs, ValidationError{
			Field:   strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "config", Message: err.Error()})
	}

	return errs
}

// ValidateFile validates a configuration file at the given path.
// Environment variables are not consulted.
func (v *Validator) ValidateFile(path string) error {
	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}

	return v.Validate(cfg)
}
