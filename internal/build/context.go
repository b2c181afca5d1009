package build

import (
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
)

// Naming conventions shared by the descriptor and the aggregate build file.
const (
	// NameSeparator replaces "/" in component names and joins vendor and name.
	NameSeparator = "~"

	// DefaultTargetPrefix prefixes the default target of a descriptor.
	DefaultTargetPrefix = "run-tests-"

	// ClasspathIDPrefix prefixes the id of the component class path.
	ClasspathIDPrefix = "classpath-"

	// ReportTargetPrefix prefixes the coverage report target.
	ReportTargetPrefix = "cobertura-report-"

	// DefaultEncoding is used when no source encoding is configured.
	DefaultEncoding = "UTF-8"
)

// Params are the generation time parameters.
type Params struct {
	// JUnitTimeout is the JUnit timeout in milliseconds. 0 omits the timeout.
	JUnitTimeout int

	// CoberturaDir is the folder holding the Cobertura libraries.
	CoberturaDir string

	// Encoding is the source encoding. Empty means UTF-8.
	Encoding string
}

// Context is the data a descriptor template is rendered with.
type Context struct {
	NormalizedComponentName string
	DefaultTarget           string
	ClasspathID             string
	ReportTarget            string
	ComponentBase           string
	Classpaths              []string
	ClassesDir              string
	Sources                 []string
	JUnitTimeout            int
	TargetVersion           string
	CoberturaDir            string
	Encoding                string
}

// Value is a single named context entry.
type Value struct {
	Key   string
	Value any
}

// Values returns the context as an ordered list of named entries.
func (c *Context) Values() []Value {
	return []Value{
		{"normalizedComponentName", c.NormalizedComponentName},
		{"defaultTarget", c.DefaultTarget},
		{"classpathId", c.ClasspathID},
		{"reportTarget", c.ReportTarget},
		{"componentBase", c.ComponentBase},
		{"classpaths", c.Classpaths},
		{"classesDir", c.ClassesDir},
		{"sources", c.Sources},
		{"junitTimeout", c.JUnitTimeout},
		{"targetVersion", c.TargetVersion},
		{"coberturaDir", c.CoberturaDir},
		{"encoding", c.Encoding},
	}
}

// ContextBuilder derives descriptor contexts from component metadata.
type ContextBuilder struct {
	params Params
}

// NewContextBuilder creates a builder using the given parameters.
func NewContextBuilder(params Params) *ContextBuilder {
	if params.Encoding == "" {
		params.Encoding = DefaultEncoding
	}
	return &ContextBuilder{params: params}
}

// Build assembles the context for c. base is the component base location;
// sources and classpath are the resolved folders. Build has no side effects.
func (b *ContextBuilder) Build(c *component.Component, base string, sources, classpath []string) *Context {
	names := NamesFor(c)

	return &Context{
		NormalizedComponentName: names.Normalized,
		DefaultTarget:           names.DefaultTarget,
		ClasspathID:             names.ClasspathID,
		ReportTarget:            names.ReportTarget,
		ComponentBase:           base,
		Classpaths:              append([]string(nil), classpath...),
		ClassesDir:              c.OutputFolder,
		Sources:                 dedupe(sources),
		JUnitTimeout:            b.params.JUnitTimeout,
		TargetVersion:           c.SourceVersion(),
		CoberturaDir:            b.params.CoberturaDir,
		Encoding:                b.params.Encoding,
	}
}

// Names are the identifiers derived from a component identity.
type Names struct {
	Normalized    string
	DefaultTarget string
	ClasspathID   string
	ReportTarget  string
}

// NamesFor derives the target and class path names of c.
func NamesFor(c *component.Component) Names {
	normalized := c.NormalizedName(NameSeparator)
	return Names{
		Normalized:    normalized,
		DefaultTarget: DefaultTargetPrefix + normalized,
		ClasspathID:   ClasspathIDPrefix + normalized,
		ReportTarget:  ReportTargetPrefix + normalized,
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
