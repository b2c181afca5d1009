package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigFileEnv names the config file, overriding the default location.
	ConfigFileEnv = "NWDI_COBERTURA_CONFIG"

	homeDirName    = ".nwdi-cobertura"
	configFileName = "config.yaml"
)

// Paths holds the per-user locations of the tool.
type Paths struct {
	// HomeDir is ~/.nwdi-cobertura.
	HomeDir string

	// ConfigFile is ~/.nwdi-cobertura/config.yaml.
	ConfigFile string
}

// DefaultPaths returns the per-user locations below the home directory.
func DefaultPaths() (*Paths, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(userHome, homeDirName)
	return &Paths{
		HomeDir:    home,
		ConfigFile: filepath.Join(home, configFileName),
	}, nil
}

// GetConfigFile returns the config file named by NWDI_COBERTURA_CONFIG, or
// the default location when it is unset.
func GetConfigFile() (string, error) {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath replaces a leading ~ or ~/ with the home directory. Other
// paths, including ~user forms, are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	if rest != "" && rest[0] != '/' && rest[0] != filepath.Separator {
		return path, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userHome, rest), nil
}

// AbsPath expands ~ and makes path absolute, using forward slashes.
func AbsPath(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}
