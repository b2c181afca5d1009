package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures RunWithSpinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	enabled bool
}

// WithTitle sets the text shown next to the spinner.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithSpinner turns the spinner on or off. Verbose and machine readable runs
// turn it off so log lines and reports are not interleaved with frames.
func WithSpinner(enabled bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.enabled = enabled
	}
}

// RunWithSpinner runs action, showing a spinner while it works when stdout is
// a terminal. It returns ctx.Err() without running action if ctx is already
// done, otherwise the error of action.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := spinnerConfig{title: "Generating build files", enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.enabled || !IsTTY() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Type(spinner.MiniDot).
		Title(cfg.title).
		Context(ctx).
		Action(func() { actionErr = action() }).
		Run()
	if err != nil {
		return fmt.Errorf("running spinner: %w", err)
	}

	return actionErr
}
