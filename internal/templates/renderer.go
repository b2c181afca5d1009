package templates

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Renderer renders the bundled templates. The templates are parsed once.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the bundled templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").
		Option("missingkey=error").
		Funcs(funcMap()).
		ParseFS(templateFS, templateDir+"/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// MustNewRenderer is like NewRenderer but panics when the bundled templates
// do not parse.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named template with data and writes the result to w.
func (r *Renderer) Render(w io.Writer, name Name, data any) error {
	if !IsValid(name) {
		return fmt.Errorf("unknown template %q", name)
	}

	if err := r.tmpl.ExecuteTemplate(w, string(name), data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

// RenderString executes the named template and returns the result.
func (r *Renderer) RenderString(name Name, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"attr": escapeAttr,
	}
}

// escapeAttr escapes s for use inside a double-quoted XML attribute.
func escapeAttr(s string) string {
	var b strings.Builder
	// xml.EscapeText only fails when the writer fails.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
