package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPathTree(t *testing.T) {
	tree := RenderPathTree("/work", map[string]string{
		"cobertura-build-all.xml":                             "aggregate",
		".dtc/DCs/example.org/lib/dc1/cobertura-build.xml":    "example.org/lib/dc1",
		".dtc/DCs/sap.com/sap.com.tc.api/cobertura-build.xml": "sap.com/sap.com.tc.api",
	})

	lines := strings.Split(strings.TrimSuffix(tree, "\n"), "\n")
	assert.Contains(t, lines[0], "/work/")
	assert.Equal(t, "├── .dtc/", lines[1], "directories come before files")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "└── cobertura-build-all.xml"))
	assert.Contains(t, tree, "│   └── DCs/")
	assert.Contains(t, tree, "example.org/lib/dc1")
	assert.Contains(t, tree, "sap.com/sap.com.tc.api")
	assert.Less(t, strings.Index(tree, "example.org/"), strings.Index(tree, "sap.com/"))
}

func TestRenderPathTree_Empty(t *testing.T) {
	assert.Empty(t, RenderPathTree("/work", nil))
}
