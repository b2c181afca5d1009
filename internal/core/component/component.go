// Package component provides the development component (DC) domain types:
// components, their public parts and references, and the compartment and
// development configuration a component belongs to.
package component

import (
	"fmt"
	"strings"
)

// PublicPartType classifies a public part.
type PublicPartType string

const (
	// Compile marks a public part used at compile time.
	Compile PublicPartType = "compile"

	// Assembly marks a public part packaged into runtime archives.
	Assembly PublicPartType = "assembly"
)

// IsValid reports whether t is a known public part type.
func (t PublicPartType) IsValid() bool {
	switch t {
	case Compile, Assembly:
		return true
	default:
		return false
	}
}

// PublicPart is a named subset of a component's output exposed to dependents.
type PublicPart struct {
	Name string         `json:"name"`
	Type PublicPartType `json:"type"`
}

// PublicPartReference points at a public part of another component.
// An empty Part references every compile-time part of the target.
type PublicPartReference struct {
	Vendor    string `json:"vendor"`
	Component string `json:"component"`
	Part      string `json:"part,omitempty"`
}

// Key returns the identity of the referenced component.
func (r PublicPartReference) Key() string {
	return Key(r.Vendor, r.Component)
}

// DevelopmentConfiguration is the build configuration a compartment is part of.
type DevelopmentConfiguration struct {
	Name string `json:"name"`

	// SourceVersion is the Java source level, e.g. "1.6".
	SourceVersion string `json:"sourceVersion,omitempty"`
}

// Compartment groups components of one software component.
type Compartment struct {
	Name          string                    `json:"name"`
	Vendor        string                    `json:"vendor,omitempty"`
	Configuration *DevelopmentConfiguration `json:"-"`
}

// Component is a buildable unit of source code.
type Component struct {
	Vendor string `json:"vendor"`
	Name   string `json:"name"`

	// OutputFolder is the absolute folder compiled classes are written to.
	OutputFolder string `json:"outputFolder,omitempty"`

	SourceFolders     []string              `json:"sourceFolders,omitempty"`
	TestSourceFolders []string              `json:"testSourceFolders,omitempty"`
	PublicParts       []PublicPart          `json:"publicParts,omitempty"`
	References        []PublicPartReference `json:"references,omitempty"`

	Compartment *Compartment `json:"-"`
}

// New creates a component with the given identity, public parts and references.
func New(vendor, name string, parts []PublicPart, refs []PublicPartReference) *Component {
	return &Component{
		Vendor:      vendor,
		Name:        name,
		PublicParts: parts,
		References:  refs,
	}
}

// Key returns the identity of a component with the given vendor and name.
func Key(vendor, name string) string {
	return vendor + "/" + name
}

// Key returns the identity of the component (vendor + "/" + name).
func (c *Component) Key() string {
	return Key(c.Vendor, c.Name)
}

// NormalizedName joins vendor and name with sep, replacing every '/' in the
// name by sep as well.
func (c *Component) NormalizedName(sep string) string {
	return c.Vendor + sep + strings.ReplaceAll(c.Name, "/", sep)
}

// SourceVersion returns the source version of the development configuration
// the component belongs to, or "" when the chain is incomplete.
func (c *Component) SourceVersion() string {
	if c.Compartment == nil || c.Compartment.Configuration == nil {
		return ""
	}
	return c.Compartment.Configuration.SourceVersion
}

// PublicPart returns the public part with the given name.
func (c *Component) PublicPart(name string) (PublicPart, bool) {
	for _, pp := range c.PublicParts {
		if pp.Name == name {
			return pp, true
		}
	}
	return PublicPart{}, false
}

// AddSourceFolder appends a production source folder.
func (c *Component) AddSourceFolder(folder string) {
	c.SourceFolders = append(c.SourceFolders, folder)
}

// AddTestSourceFolder appends a test source folder.
func (c *Component) AddTestSourceFolder(folder string) {
	c.TestSourceFolders = append(c.TestSourceFolders, folder)
}

// Validate checks that the component carries an identity.
func (c *Component) Validate() error {
	if c.Vendor == "" {
		return fmt.Errorf("component %q: vendor is empty", c.Name)
	}
	if c.Name == "" {
		return fmt.Errorf("component of vendor %q: name is empty", c.Vendor)
	}
	return nil
}

func (c *Component) String() string {
	return c.Key()
}
