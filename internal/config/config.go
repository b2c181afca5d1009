// Package config provides configuration loading and management.
package config

import (
	"path"
	"strconv"
	"strings"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/build"
)

// Defaults.
const (
	// DefaultRegistryFile is the registry file name looked up in the workspace.
	DefaultRegistryFile = "components.yaml"

	// DefaultCoberturaDir is the Cobertura library folder below the workspace.
	DefaultCoberturaDir = ".cobertura/lib"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the nwdi-cobertura configuration.
// Loaded from ~/.nwdi-cobertura/config.yaml, validated against the embedded
// CUE schema.
type Config struct {
	// Workspace is the NWDI workspace root containing .dtc/DCs.
	// Env: NWDI_COBERTURA_WORKSPACE, Default: current directory
	Workspace string `json:"workspace,omitempty" yaml:"workspace,omitempty" mapstructure:"workspace"`

	// Registry is the component registry file (.yaml, .yml or .toml).
	// Env: NWDI_COBERTURA_REGISTRY, Default: <workspace>/components.yaml
	Registry string `json:"registry,omitempty" yaml:"registry,omitempty" mapstructure:"registry"`

	// JUnitTimeout is the JUnit timeout in milliseconds, 0 for none.
	// Env: NWDI_COBERTURA_JUNIT_TIMEOUT
	JUnitTimeout int `json:"junitTimeout,omitempty" yaml:"junitTimeout,omitempty" mapstructure:"junitTimeout"`

	// Encoding is the Java source encoding.
	// Env: NWDI_COBERTURA_ENCODING, Default: UTF-8
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" mapstructure:"encoding"`

	// CoberturaDir holds the Cobertura jars.
	// Env: NWDI_COBERTURA_DIR, Default: <workspace>/.cobertura/lib
	CoberturaDir string `json:"coberturaDir,omitempty" yaml:"coberturaDir,omitempty" mapstructure:"coberturaDir"`

	// Aggregate also writes the master build file.
	Aggregate bool `json:"aggregate,omitempty" yaml:"aggregate,omitempty" mapstructure:"aggregate"`

	// FailFast stops generation at the first failing component.
	FailFast bool `json:"failFast,omitempty" yaml:"failFast,omitempty" mapstructure:"failFast"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `nwdi-cobertura config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Encoding: build.DefaultEncoding,
	}
}

// WithDefaults returns a copy of the config with unset values derived from
// the workspace.
func (c *Config) WithDefaults() *Config {
	out := *c

	if out.Workspace == "" {
		out.Workspace = "."
	}
	if out.Encoding == "" {
		out.Encoding = build.DefaultEncoding
	}
	if out.Registry == "" {
		out.Registry = path.Join(out.Workspace, DefaultRegistryFile)
	}
	if out.CoberturaDir == "" {
		out.CoberturaDir = path.Join(out.Workspace, DefaultCoberturaDir)
	}
	if out.JUnitTimeout < 0 {
		out.JUnitTimeout = 0
	}

	return &out
}

// Params returns the generation parameters.
func (c *Config) Params() build.Params {
	return build.Params{
		JUnitTimeout: c.JUnitTimeout,
		CoberturaDir: c.CoberturaDir,
		Encoding:     c.Encoding,
	}
}

// ParseJUnitTimeout parses a timeout in milliseconds. Values that are not
// positive integers yield 0, which omits the timeout.
func ParseJUnitTimeout(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
