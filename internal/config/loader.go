package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// Environment variable prefix for configuration.
const envPrefix = "NWDI_COBERTURA"

// Environment variables bound to config keys.
var envBindings = map[string]string{
	"workspace":      "NWDI_COBERTURA_WORKSPACE",
	"registry":       "NWDI_COBERTURA_REGISTRY",
	"junitTimeout":   "NWDI_COBERTURA_JUNIT_TIMEOUT",
	"encoding":       "NWDI_COBERTURA_ENCODING",
	"coberturaDir":   "NWDI_COBERTURA_DIR",
	"aggregate":      "NWDI_COBERTURA_AGGREGATE",
	"failFast":       "NWDI_COBERTURA_FAIL_FAST",
	"log.timestamps": "NWDI_COBERTURA_LOG_TIMESTAMPS",
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return envBindings[key]
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper

	// dotEnv is the .env file loaded before the environment is read.
	dotEnv string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v, dotEnv: ".env"}
}

// WithDotEnv sets the .env file to load. Empty disables loading.
func (l *Loader) WithDotEnv(path string) *Loader {
	l.dotEnv = path
	return l
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	// A missing config file is fine; defaults and env vars apply.
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		output.Debug("config file not found, using defaults", "path", expandedPath)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// LoadFile reads a config file without consulting the environment. A missing
// file is an error.
func LoadFile(path string) (*Config, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				"config file does not exist",
				expandedPath,
				"Run 'nwdi-cobertura config init' to create one",
			)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(expandedPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), expandedPath, "", "Check the YAML syntax")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv exports the .env file. Variables already set win.
func (l *Loader) loadDotEnv() error {
	if l.dotEnv == "" {
		return nil
	}
	if err := godotenv.Load(l.dotEnv); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", l.dotEnv, err)
	}
	output.Debug("loaded environment file", "path", l.dotEnv)
	return nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
