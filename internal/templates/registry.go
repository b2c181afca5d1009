package templates

import "fmt"

// Name identifies one of the bundled templates.
type Name string

const (
	// Descriptor renders the per-component cobertura-build.xml.
	Descriptor Name = "cobertura-build.xml.tmpl"

	// Master renders the aggregate build file calling every descriptor.
	Master Name = "master-build.xml.tmpl"
)

// Template describes a bundled template.
type Template struct {
	// Name is the template identifier.
	Name Name

	// Description explains what the rendered file is used for.
	Description string
}

// registry is the internal registry of bundled templates.
var registry = map[Name]Template{
	Descriptor: {
		Name:        Descriptor,
		Description: "Per-component Ant build file: instrument, compile tests, run JUnit, report coverage",
	},
	Master: {
		Name:        Master,
		Description: "Aggregate Ant build file running every generated component build file",
	},
}

// Get returns the bundled template with the given name.
func Get(name Name) (Template, error) {
	t, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s, %s", name, Descriptor, Master)
	}
	return t, nil
}

// List returns all bundled templates.
func List() []Template {
	return []Template{registry[Descriptor], registry[Master]}
}

// IsValid reports whether name is a bundled template.
func IsValid(name Name) bool {
	_, ok := registry[name]
	return ok
}
