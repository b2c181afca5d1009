package build

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/templates"
)

// DescriptorFileName is the name of the descriptor written to each
// component base location.
const DescriptorFileName = "cobertura-build.xml"

// TemplateRenderer renders a bundled template.
type TemplateRenderer interface {
	Render(w io.Writer, name templates.Name, data any) error
}

// SinkFactory opens the output a descriptor is written to.
type SinkFactory func(path string) (io.WriteCloser, error)

// FileSink creates path, and its parent folders, truncating an existing file.
func FileSink(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}
	return os.Create(path)
}

// Writer renders descriptors and persists them.
type Writer struct {
	renderer TemplateRenderer
	sinks    SinkFactory
}

// NewWriter creates a writer. A nil sinks uses FileSink.
func NewWriter(renderer TemplateRenderer, sinks SinkFactory) *Writer {
	if sinks == nil {
		sinks = FileSink
	}
	return &Writer{renderer: renderer, sinks: sinks}
}

// DescriptorPath returns <base>/cobertura-build.xml.
func DescriptorPath(base string) string {
	return base + "/" + DescriptorFileName
}

// Write renders the descriptor of c and writes it to its base location.
// It returns the written path.
func (w *Writer) Write(c *component.Component, ctx *Context) (string, error) {
	path := DescriptorPath(ctx.ComponentBase)
	if err := w.write(c.Key(), path, templates.Descriptor, ctx); err != nil {
		return "", err
	}
	return path, nil
}

// Render renders the descriptor of c to out without persisting it.
func (w *Writer) Render(c *component.Component, ctx *Context, out io.Writer) error {
	if err := w.renderer.Render(out, templates.Descriptor, ctx); err != nil {
		return &RenderError{
			ComponentKey: c.Key(),
			Template:     string(templates.Descriptor),
			Cause:        err,
		}
	}
	return nil
}

// write renders name into memory, then opens path and copies the result.
// A failed rendering leaves an existing file at path untouched.
func (w *Writer) write(key, path string, name templates.Name, data any) (err error) {
	var buf bytes.Buffer
	if rerr := w.renderer.Render(&buf, name, data); rerr != nil {
		return &RenderError{ComponentKey: key, Template: string(name), Cause: rerr}
	}

	sink, err := w.sinks(path)
	if err != nil {
		return &IOError{ComponentKey: key, Path: path, Op: "open", Cause: err}
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = &IOError{ComponentKey: key, Path: path, Op: "close", Cause: cerr}
		}
	}()

	if _, werr := buf.WriteTo(sink); werr != nil {
		return &IOError{ComponentKey: key, Path: path, Op: "write", Cause: werr}
	}
	return nil
}
