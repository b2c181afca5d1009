package cmd

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
)

func TestTargets_List(t *testing.T) {
	root, _ := newTestWorkspace(t)

	out, err := executeCommand(t, "targets", "--workspace", root)
	require.NoError(t, err)

	assert.Contains(t, out, "run-tests-example.org~lib~dc1")
	assert.Contains(t, out, "classpath-example.org~lib~dc1")
	assert.Contains(t, out, "cobertura-report-sap.com~sap.com.security.api.sda")
}

func TestTargets_Context(t *testing.T) {
	root, _ := newTestWorkspace(t)

	out, err := executeCommand(t, "targets", "example.org/lib/dc1", "--workspace", root)
	require.NoError(t, err)

	assert.Contains(t, out, "normalizedComponentName")
	assert.Contains(t, out, root+"/.dtc/DCs/example.org/lib/dc1")
	assert.Contains(t, out, "/work/classes")
}

func TestTargets_Render(t *testing.T) {
	root, _ := newTestWorkspace(t)

	out, err := executeCommand(t, "targets", "example.org/lib/dc1", "--render", "--workspace", root)
	require.NoError(t, err)

	var project struct {
		Default string `xml:"default,attr"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &project))
	assert.Equal(t, "run-tests-example.org~lib~dc1", project.Default)
}

func TestTargets_Errors(t *testing.T) {
	root, _ := newTestWorkspace(t)

	_, err := executeCommand(t, "targets", "example.org/missing", "--workspace", root)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))

	_, err = executeCommand(t, "targets", "--render", "--workspace", root)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "a\nb", formatValue([]string{"a", "b"}))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, "x", formatValue("x"))
	assert.Equal(t, "true", formatValue(true))
}
