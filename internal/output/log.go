// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// logger is the package logger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level, timestamps and caller reporting.
	Verbose bool

	// Timestamps overrides timestamp reporting. nil means on.
	Timestamps *bool
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// SetupLogging configures the package logger.
// Verbose forces timestamps on regardless of Timestamps.
func SetupLogging(cfg LogConfig) {
	setupLogging(os.Stderr, cfg)
}

func setupLogging(w io.Writer, cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil && !cfg.Verbose {
		timestamps = *cfg.Timestamps
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// ComponentLogger returns a child logger prefixed with the component key,
// e.g. "example.org/lib/dc1".
func ComponentLogger(key string) *log.Logger {
	return logger.WithPrefix(StyleNoun.Render("dc:" + strings.TrimSpace(key)))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}
