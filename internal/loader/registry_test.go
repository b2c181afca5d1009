package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
)

const yamlRegistry = `configuration:
  name: EX_D
  sourceVersion: "1.6"
compartments:
  - name: example.org_LIB_1
    vendor: example.org
    components:
      - name: lib/dc1
        outputFolder: /work/.dtc/t/1234/classes
        sourceFolders: [src/packages]
        testSourceFolders: [test/packages]
        publicParts:
          - {name: api, type: compile}
        references:
          - {vendor: sap.com, component: sap.com.security.api.sda, part: api}
  - name: sap.com_SECURITY_1
    vendor: sap.com
    components:
      - name: sap.com.security.api.sda
        publicParts:
          - {name: api}
          - {name: archive, type: assembly}
`

const tomlRegistry = `[configuration]
name = "EX_D"
sourceVersion = "1.5"

[[compartments]]
name = "example.org_LIB_1"
vendor = "example.org"

[[compartments.components]]
name = "lib/dc1"
sourceFolders = ["src/packages"]

[[compartments.components.references]]
vendor = "sap.com"
component = "sap.com.security.api.sda"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry_YAML(t *testing.T) {
	reg, err := LoadRegistry(writeFile(t, "components.yaml", yamlRegistry))
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	dc := reg.Get("example.org", "lib/dc1")
	require.NotNil(t, dc)
	assert.Equal(t, "/work/.dtc/t/1234/classes", dc.OutputFolder)
	assert.Equal(t, []string{"src/packages"}, dc.SourceFolders)
	assert.Equal(t, []string{"test/packages"}, dc.TestSourceFolders)
	assert.Equal(t, "1.6", dc.SourceVersion())
	assert.Equal(t, "example.org_LIB_1", dc.Compartment.Name)
	require.Len(t, dc.References, 1)
	assert.Equal(t, component.PublicPartReference{
		Vendor: "sap.com", Component: "sap.com.security.api.sda", Part: "api",
	}, dc.References[0])

	api := reg.Get("sap.com", "sap.com.security.api.sda")
	require.NotNil(t, api)
	assert.Equal(t, []component.PublicPart{
		{Name: "api", Type: component.Compile},
		{Name: "archive", Type: component.Assembly},
	}, api.PublicParts, "missing type defaults to compile")
}

func TestLoadRegistry_TOML(t *testing.T) {
	reg, err := LoadRegistry(writeFile(t, "components.toml", tomlRegistry))
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	dc := reg.Get("example.org", "lib/dc1")
	require.NotNil(t, dc)
	assert.Equal(t, "1.5", dc.SourceVersion())
	require.Len(t, dc.References, 1)
	assert.Empty(t, dc.References[0].Part)
}

func TestLoadRegistry_NotFound(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestDecodeRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		format      Format
		errContains string
	}{
		{
			name:        "missing configuration",
			content:     "compartments: []\n",
			format:      FormatYAML,
			errContains: "Configuration",
		},
		{
			name: "component without name",
			content: `configuration: {name: EX_D}
compartments:
  - name: c1
    vendor: example.org
    components:
      - outputFolder: /tmp
`,
			format:      FormatYAML,
			errContains: "Name",
		},
		{
			name: "component without vendor",
			content: `configuration: {name: EX_D}
compartments:
  - name: c1
    components:
      - name: lib/dc1
`,
			format:      FormatYAML,
			errContains: "has no vendor",
		},
		{
			name: "unknown public part type",
			content: `configuration: {name: EX_D}
compartments:
  - name: c1
    vendor: example.org
    components:
      - name: lib/dc1
        publicParts:
          - {name: api, type: runtime}
`,
			format:      FormatYAML,
			errContains: "oneof",
		},
		{
			name:        "unknown field",
			content:     "configuration: {name: EX_D}\nunknown: true\n",
			format:      FormatYAML,
			errContains: "decoding yaml",
		},
		{
			name:        "broken toml",
			content:     "[configuration\n",
			format:      FormatTOML,
			errContains: "decoding toml",
		},
		{
			name:        "unsupported format",
			content:     "",
			format:      Format("xml"),
			errContains: "unsupported registry format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRegistry([]byte(tt.content), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRegistryFile_BuildDuplicateKeepsLast(t *testing.T) {
	file := &RegistryFile{
		Configuration: ConfigurationEntry{Name: "EX_D"},
		Compartments: []CompartmentEntry{{
			Name:   "c1",
			Vendor: "example.org",
			Components: []ComponentEntry{
				{Name: "lib/dc1", OutputFolder: "/first"},
				{Name: "lib/dc1", OutputFolder: "/second"},
			},
		}},
	}

	reg := file.Build()
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, "/second", reg.Get("example.org", "lib/dc1").OutputFolder)
}
