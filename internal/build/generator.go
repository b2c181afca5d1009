// Package build generates Cobertura test descriptors for development
// components.
//
// For each component the generator resolves source folders and the class
// path, applies the eligibility filter, derives the template context and
// writes <base>/cobertura-build.xml. Components are processed sequentially
// in input order.
package build

import (
	"errors"
	"fmt"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// SourceProvider resolves the file system layout of components.
type SourceProvider interface {
	// BaseLocation returns the folder a component lives in.
	BaseLocation(c *component.Component) string

	// SourceFolders returns existing production source folders.
	SourceFolders(c *component.Component) ([]string, error)

	// TestSourceFolders returns existing test source folders.
	TestSourceFolders(c *component.Component) ([]string, error)

	// ClassPath returns the class path folders of a component.
	ClassPath(c *component.Component) ([]string, error)
}

// Options configure a Generator.
type Options struct {
	// Provider resolves sources and class paths (required).
	Provider SourceProvider

	// Renderer renders the templates (required).
	Renderer TemplateRenderer

	// Params are passed into every descriptor.
	Params Params

	// SinkFactory opens descriptor files. Defaults to FileSink.
	SinkFactory SinkFactory

	// Filter decides eligibility. Defaults to DefaultFilter.
	Filter Filter

	// FailFast stops at the first failing component instead of recording
	// it and continuing.
	FailFast bool
}

// Generator writes descriptors for a batch of components.
type Generator struct {
	provider SourceProvider
	filter   Filter
	contexts *ContextBuilder
	writer   *Writer
	failFast bool
}

// NewGenerator creates a generator.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("generator: provider is required")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("generator: renderer is required")
	}
	if opts.Filter == nil {
		opts.Filter = DefaultFilter()
	}

	return &Generator{
		provider: opts.Provider,
		filter:   opts.Filter,
		contexts: NewContextBuilder(opts.Params),
		writer:   NewWriter(opts.Renderer, opts.SinkFactory),
		failFast: opts.FailFast,
	}, nil
}

// Generate writes a descriptor for every eligible component.
//
// Source resolution failures abort the run. Rendering and I/O failures are
// recorded as diagnostics unless FailFast is set, in which case the first one
// is returned. The partial result is returned together with any error.
func (g *Generator) Generate(components []*component.Component) (*Result, error) {
	result := &Result{}

	for _, c := range components {
		if c == nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Message: "nil component ignored"})
			output.Warn("nil component ignored")
			continue
		}
		if err := c.Validate(); err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Component: c.Key(),
				Message:   err.Error(),
			})
			output.Warn("invalid component ignored", "component", c.Key(), "err", err)
			continue
		}

		path, generated, err := g.generate(c)
		if err != nil {
			if g.failFast || errors.Is(err, ErrSourceResolution) {
				return result, err
			}
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Component: c.Key(),
				Message:   "generation failed",
				Err:       err,
			})
			output.ComponentLogger(c.Key()).Error("generation failed", "err", err)
			continue
		}
		if !generated {
			result.Skipped = append(result.Skipped, c)
			continue
		}

		result.add(c, path)
	}

	return result, nil
}

// generate handles a single component. It reports false when the component
// was rejected by the filter.
func (g *Generator) generate(c *component.Component) (string, bool, error) {
	ctx, ok, err := g.Context(c)
	if err != nil || !ok {
		return "", false, err
	}

	path, err := g.writer.Write(c, ctx)
	if err != nil {
		return "", false, err
	}

	output.ComponentLogger(c.Key()).Debug("descriptor written", "path", path)
	return path, true, nil
}

// Context resolves c and builds its descriptor context. It reports false when
// the filter rejects the component.
func (g *Generator) Context(c *component.Component) (*Context, bool, error) {
	sources, classpath, err := g.resolve(c)
	if err != nil {
		return nil, false, err
	}

	if !g.filter.Accept(c, sources, classpath) {
		return nil, false, nil
	}

	return g.contexts.Build(c, g.provider.BaseLocation(c), sources, classpath), true, nil
}

// Writer returns the descriptor writer used by the generator.
func (g *Generator) Writer() *Writer {
	return g.writer
}

func (g *Generator) resolve(c *component.Component) (sources, classpath []string, err error) {
	wrap := func(err error) error {
		return &SourceResolutionError{ComponentKey: c.Key(), Cause: err}
	}

	sources, err = g.provider.SourceFolders(c)
	if err != nil {
		return nil, nil, wrap(err)
	}
	tests, err := g.provider.TestSourceFolders(c)
	if err != nil {
		return nil, nil, wrap(err)
	}
	classpath, err = g.provider.ClassPath(c)
	if err != nil {
		return nil, nil, wrap(err)
	}

	combined := make([]string, 0, len(sources)+len(tests))
	combined = append(combined, sources...)
	combined = append(combined, tests...)
	return dedupe(combined), classpath, nil
}
