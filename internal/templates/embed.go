// Package templates provides the embedded Ant build file templates and their
// rendering.
package templates

import "embed"

//go:embed files/*.tmpl
var templateFS embed.FS

// templateDir is the directory holding the templates inside templateFS.
const templateDir = "files"
