// Package loader reads development component registries from disk.
//
// A registry file describes one development configuration, its compartments
// and the components they contain. YAML (.yaml, .yml) and TOML (.toml) are
// supported:
//
//	configuration:
//	  name: EX_D
//	  sourceVersion: "1.6"
//	compartments:
//	  - name: example.org_LIB_1
//	    vendor: example.org
//	    components:
//	      - name: lib/dc1
//	        outputFolder: /work/.dtc/t/1234/classes
//	        sourceFolders: [src/packages]
//	        testSourceFolders: [test/packages]
//	        publicParts:
//	          - {name: api, type: compile}
//	        references:
//	          - {vendor: sap.com, component: sap.com.security.api.sda, part: api}
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// RegistryFile is the on-disk representation of a component registry.
type RegistryFile struct {
	Configuration ConfigurationEntry `yaml:"configuration" toml:"configuration" validate:"required"`
	Compartments  []CompartmentEntry `yaml:"compartments" toml:"compartments" validate:"dive"`
}

// ConfigurationEntry describes the development configuration.
type ConfigurationEntry struct {
	Name          string `yaml:"name" toml:"name" validate:"required"`
	SourceVersion string `yaml:"sourceVersion" toml:"sourceVersion"`
}

// CompartmentEntry describes a compartment and its components.
type CompartmentEntry struct {
	Name       string           `yaml:"name" toml:"name" validate:"required"`
	Vendor     string           `yaml:"vendor" toml:"vendor"`
	Components []ComponentEntry `yaml:"components" toml:"components" validate:"dive"`
}

// ComponentEntry describes a single development component. Vendor defaults
// to the compartment vendor.
type ComponentEntry struct {
	Vendor            string           `yaml:"vendor" toml:"vendor"`
	Name              string           `yaml:"name" toml:"name" validate:"required"`
	OutputFolder      string           `yaml:"outputFolder" toml:"outputFolder"`
	SourceFolders     []string         `yaml:"sourceFolders" toml:"sourceFolders"`
	TestSourceFolders []string         `yaml:"testSourceFolders" toml:"testSourceFolders"`
	PublicParts       []PublicPartSpec `yaml:"publicParts" toml:"publicParts" validate:"dive"`
	References        []ReferenceSpec  `yaml:"references" toml:"references" validate:"dive"`
}

// PublicPartSpec describes a public part.
type PublicPartSpec struct {
	Name string `yaml:"name" toml:"name" validate:"required"`
	Type string `yaml:"type" toml:"type" validate:"omitempty,oneof=compile assembly"`
}

// ReferenceSpec describes a public part reference.
type ReferenceSpec struct {
	Vendor    string `yaml:"vendor" toml:"vendor" validate:"required"`
	Component string `yaml:"component" toml:"component" validate:"required"`
	Part      string `yaml:"part" toml:"part"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadRegistry reads the registry file at path and builds a component registry.
func LoadRegistry(path string) (*component.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("registry file %s does not exist", path),
				path,
				"Pass --registry or set registry in the config file",
			)
		}
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	file, err := DecodeRegistry(data, formatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("registry file %s: %w", path, err)
	}

	reg := file.Build()
	output.Debug("registry loaded",
		"path", path,
		"configuration", file.Configuration.Name,
		"components", reg.Len(),
	)

	return reg, nil
}

// Format identifies a registry file encoding.
type Format string

const (
	// FormatYAML is the YAML registry encoding.
	FormatYAML Format = "yaml"

	// FormatTOML is the TOML registry encoding.
	FormatTOML Format = "toml"
)

func formatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// DecodeRegistry decodes and validates registry file content.
func DecodeRegistry(data []byte, format Format) (*RegistryFile, error) {
	var file RegistryFile

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported registry format %q", format)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &file, nil
}

// Validate checks the registry file for missing identities and unknown
// public part types.
func (f *RegistryFile) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return oerrors.NewValidationError(
				fmt.Sprintf("constraint %q failed", first.Tag()),
				"",
				first.Namespace(),
				"Check the registry file against the documented layout",
			)
		}
		return fmt.Errorf("validating registry: %w", err)
	}

	for _, cmp := range f.Compartments {
		for _, entry := range cmp.Components {
			if entry.Vendor == "" && cmp.Vendor == "" {
				return oerrors.NewValidationError(
					fmt.Sprintf("component %q has no vendor", entry.Name),
					"",
					"compartments."+cmp.Name+".components.vendor",
					"Set vendor on the component or on its compartment",
				)
			}
		}
	}

	return nil
}

// Build converts the file into a registry. Components defined twice are
// replaced by their last definition.
func (f *RegistryFile) Build() *component.Registry {
	reg := component.NewRegistry()
	config := &component.DevelopmentConfiguration{
		Name:          f.Configuration.Name,
		SourceVersion: f.Configuration.SourceVersion,
	}

	for _, cmp := range f.Compartments {
		compartment := &component.Compartment{
			Name:          cmp.Name,
			Vendor:        cmp.Vendor,
			Configuration: config,
		}

		for _, entry := range cmp.Components {
			c := entry.toComponent(cmp.Vendor)
			c.Compartment = compartment
			if reg.Add(c) {
				output.Warn("component defined more than once, keeping last definition", "component", c.Key())
			}
		}
	}

	return reg
}

func (e ComponentEntry) toComponent(defaultVendor string) *component.Component {
	vendor := e.Vendor
	if vendor == "" {
		vendor = defaultVendor
	}

	parts := make([]component.PublicPart, 0, len(e.PublicParts))
	for _, pp := range e.PublicParts {
		ppType := component.PublicPartType(pp.Type)
		if ppType == "" {
			ppType = component.Compile
		}
		parts = append(parts, component.PublicPart{Name: pp.Name, Type: ppType})
	}

	refs := make([]component.PublicPartReference, 0, len(e.References))
	for _, ref := range e.References {
		refs = append(refs, component.PublicPartReference{
			Vendor:    ref.Vendor,
			Component: ref.Component,
			Part:      ref.Part,
		})
	}

	c := component.New(vendor, e.Name, parts, refs)
	c.OutputFolder = e.OutputFolder
	c.SourceFolders = append(c.SourceFolders, e.SourceFolders...)
	c.TestSourceFolders = append(c.TestSourceFolders, e.TestSourceFolders...)

	return c
}
