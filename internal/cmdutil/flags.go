// Package cmdutil provides shared command utilities. It centralizes flag
// groups, generator wiring and report assembly for the generate and targets
// commands.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/config"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// GenerateFlags holds the flags that override generation settings of the
// loaded configuration.
type GenerateFlags struct {
	JUnitTimeout string
	Encoding     string
	CoberturaDir string
	Aggregate    bool
	FailFast     bool
}

// AddTo registers the generation flags on the given cobra command.
func (f *GenerateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.JUnitTimeout, "junit-timeout", "",
		"JUnit timeout in milliseconds, invalid or 0 disables the timeout")
	cmd.Flags().StringVar(&f.Encoding, "encoding", "",
		"Java source encoding (default UTF-8)")
	cmd.Flags().StringVar(&f.CoberturaDir, "cobertura-dir", "",
		"Folder holding the Cobertura jars (default <workspace>/.cobertura/lib)")
	cmd.Flags().BoolVar(&f.Aggregate, "aggregate", false,
		"Also write <workspace>/"+build.AggregateFileName)
	cmd.Flags().BoolVar(&f.FailFast, "fail-fast", false,
		"Stop at the first component that fails")
}

// Apply returns a copy of base with every flag that was set on cmd applied.
func (f *GenerateFlags) Apply(cmd *cobra.Command, base *config.Config) *config.Config {
	cfg := *base
	flags := cmd.Flags()

	if flags.Changed("junit-timeout") {
		cfg.JUnitTimeout = config.ParseJUnitTimeout(f.JUnitTimeout)
	}
	if flags.Changed("encoding") && f.Encoding != "" {
		cfg.Encoding = f.Encoding
	}
	if flags.Changed("cobertura-dir") && f.CoberturaDir != "" {
		cfg.CoberturaDir = f.CoberturaDir
		if abs, err := config.AbsPath(f.CoberturaDir); err == nil {
			cfg.CoberturaDir = abs
		}
	}
	if flags.Changed("aggregate") {
		cfg.Aggregate = f.Aggregate
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = f.FailFast
	}

	return &cfg
}

// OutputFlags holds the report format flag.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(output.FormatTable),
		"Output format: table, yaml, json")
}

// Parse validates the requested format. An invalid format is returned as an
// *ExitError with the validation exit code.
func (f *OutputFlags) Parse() (output.Format, error) {
	format, ok := output.ParseFormat(f.Format)
	if !ok {
		return "", oerrors.NewExitError(
			fmt.Errorf("invalid output format %q (valid: %v): %w", f.Format, output.ValidFormats(), oerrors.ErrValidation),
			oerrors.ExitValidationError,
		)
	}
	return format, nil
}
