package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args against an isolated home
// directory and returns its standard output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NWDI_COBERTURA_CONFIG", filepath.Join(home, ".nwdi-cobertura", "config.yaml"))
	for _, env := range []string{
		"NWDI_COBERTURA_WORKSPACE", "NWDI_COBERTURA_REGISTRY", "NWDI_COBERTURA_JUNIT_TIMEOUT",
		"NWDI_COBERTURA_ENCODING", "NWDI_COBERTURA_DIR", "NWDI_COBERTURA_AGGREGATE",
		"NWDI_COBERTURA_FAIL_FAST",
	} {
		t.Setenv(env, "")
	}
	t.Chdir(home)
	loadedConfig = nil

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

const testRegistry = `configuration:
  name: EX_D
  sourceVersion: "1.6"
compartments:
  - name: example.org_LIB_1
    vendor: example.org
    components:
      - name: lib/dc1
        outputFolder: /work/classes
        sourceFolders: [src/packages]
        references:
          - {vendor: sap.com, component: sap.com.security.api.sda, part: api}
  - name: sap.com_SECURITY_1
    vendor: sap.com
    components:
      - name: sap.com.security.api.sda
        publicParts:
          - {name: api, type: compile}
`

// newTestWorkspace lays out a workspace in which example.org/lib/dc1 is
// eligible and returns its root and registry path.
func newTestWorkspace(t *testing.T) (string, string) {
	t.Helper()
	root := filepath.ToSlash(t.TempDir())

	dirs := []string{
		root + "/.dtc/DCs/example.org/lib/dc1/src/packages",
		root + "/.dtc/DCs/sap.com/sap.com.security.api.sda/_comp/gen/default/public/api/lib/java",
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.FromSlash(dir), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.FromSlash(dirs[1]+"/junit-4.12.jar"), []byte("jar"), 0o644))

	registry := filepath.Join(filepath.FromSlash(root), "components.yaml")
	require.NoError(t, os.WriteFile(registry, []byte(testRegistry), 0o644))

	return root, registry
}
