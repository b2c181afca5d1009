package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		configFile := writeConfig(t, `
workspace: /work/ws
registry: /work/ws/components.toml
junitTimeout: 60000
encoding: ISO-8859-1
coberturaDir: /opt/cobertura/lib
aggregate: true
failFast: true
log:
  timestamps: false
`)

		cfg, err := NewLoader().WithDotEnv("").Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/work/ws", cfg.Workspace)
		assert.Equal(t, "/work/ws/components.toml", cfg.Registry)
		assert.Equal(t, 60000, cfg.JUnitTimeout)
		assert.Equal(t, "ISO-8859-1", cfg.Encoding)
		assert.Equal(t, "/opt/cobertura/lib", cfg.CoberturaDir)
		assert.True(t, cfg.Aggregate)
		assert.True(t, cfg.FailFast)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().WithDotEnv("").Load(configFile)

		require.NoError(t, err)
		assert.Empty(t, cfg.Workspace)
		assert.Nil(t, cfg.Log.Timestamps)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("NWDI_COBERTURA_WORKSPACE", "/env/ws")
		t.Setenv("NWDI_COBERTURA_JUNIT_TIMEOUT", "1500")
		t.Setenv("NWDI_COBERTURA_AGGREGATE", "true")

		configFile := writeConfig(t, "workspace: /file/ws\njunitTimeout: 10\n")

		cfg, err := NewLoader().WithDotEnv("").Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/env/ws", cfg.Workspace)
		assert.Equal(t, 1500, cfg.JUnitTimeout)
		assert.True(t, cfg.Aggregate)
	})

	t.Run("loads .env file", func(t *testing.T) {
		dotEnv := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(dotEnv, []byte("NWDI_COBERTURA_ENCODING=Cp1252\n"), 0o644))
		t.Setenv("NWDI_COBERTURA_ENCODING", "")
		require.NoError(t, os.Unsetenv("NWDI_COBERTURA_ENCODING"))

		cfg, err := NewLoader().WithDotEnv(dotEnv).Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "Cp1252", cfg.Encoding)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configFile := writeConfig(t, "workspace: [unterminated\n")

		_, err := NewLoader().WithDotEnv("").Load(configFile)
		assert.ErrorContains(t, err, "reading config file")
	})
}

func TestLoadWithDefaults(t *testing.T) {
	configFile := writeConfig(t, "workspace: /work/ws\n")

	cfg, err := NewLoader().WithDotEnv("").LoadWithDefaults(configFile)

	require.NoError(t, err)
	assert.Equal(t, "/work/ws/.cobertura/lib", cfg.CoberturaDir)
	assert.Equal(t, "UTF-8", cfg.Encoding)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("NWDI_COBERTURA_WORKSPACE", "/env/ws")

	cfg, err := LoadFile(writeConfig(t, "workspace: /file/ws\n"))
	require.NoError(t, err)
	assert.Equal(t, "/file/ws", cfg.Workspace, "environment is ignored")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestConfigFileExists(t *testing.T) {
	exists, err := ConfigFileExists(writeConfig(t, ""))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}
