package config

import (
	"os"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveOptions contains the candidate values of one setting.
type ResolveOptions struct {
	// Key names the setting in log output.
	Key string
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable consulted after the flag.
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// DefaultValue is used when nothing else is set.
	DefaultValue string
}

// ResolveResult contains the resolved value and its source.
type ResolveResult struct {
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Resolve applies the precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolveResult {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, lookupEnv(opts.EnvVar)},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	result := ResolveResult{Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		// The loader already merged env into config values.
		if c.source != SourceDefault && c.value != result.Value {
			result.Shadowed[c.source] = c.value
		}
	}

	if opts.Key != "" && result.Source != "" {
		output.Debug("resolved setting", "key", opts.Key, "value", result.Value, "source", result.Source)
		for source, value := range result.Shadowed {
			output.Debug("setting shadowed", "key", opts.Key, "source", source, "value", value)
		}
	}

	return result
}

func lookupEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
