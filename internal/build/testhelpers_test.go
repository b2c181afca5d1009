package build

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/provider"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/templates"
)

// descriptor is the subset of a rendered build file the tests inspect.
type descriptor struct {
	Default    string     `xml:"default,attr"`
	Properties []property `xml:"property"`
	Paths      []struct {
		ID       string `xml:"id,attr"`
		Filesets []struct {
			Dir string `xml:"dir,attr"`
		} `xml:"fileset"`
	} `xml:"path"`
	Targets []struct {
		Name  string `xml:"name,attr"`
		JUnit []struct {
			Attrs []xml.Attr `xml:",any,attr"`
		} `xml:"junit"`
		Ant []struct {
			AntFile string `xml:"antfile,attr"`
			Target  string `xml:"target,attr"`
		} `xml:"ant"`
	} `xml:"target"`
}

type property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func (d *descriptor) property(name string) (string, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// timeouts returns the timeout attributes of all junit elements.
func (d *descriptor) timeouts() []string {
	var values []string
	for _, target := range d.Targets {
		for _, junit := range target.JUnit {
			for _, attr := range junit.Attrs {
				if attr.Name.Local == "timeout" {
					values = append(values, attr.Value)
				}
			}
		}
	}
	return values
}

func parseDescriptor(t *testing.T, data []byte) *descriptor {
	t.Helper()
	var d descriptor
	require.NoError(t, xml.Unmarshal(data, &d))
	return &d
}

func readDescriptor(t *testing.T, path string) *descriptor {
	t.Helper()
	data, err := os.ReadFile(filepath.FromSlash(path))
	require.NoError(t, err)
	return parseDescriptor(t, data)
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.FromSlash(path), 0o755))
}

func touch(t *testing.T, path string) {
	t.Helper()
	mkdir(t, filepath.Dir(filepath.FromSlash(path)))
	require.NoError(t, os.WriteFile(filepath.FromSlash(path), []byte("jar"), 0o644))
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	mkdir(t, filepath.Dir(filepath.FromSlash(link)))
	if err := os.Symlink(filepath.FromSlash(target), filepath.FromSlash(link)); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

// workspace is an NWDI workspace laid out on disk.
type workspace struct {
	root     string
	registry *component.Registry
	helper   *provider.AntHelper
}

// newWorkspace registers example.org/lib/dc1 depending on the api part of
// sap.com/sap.com.security.api.sda, which also ships a JUnit archive.
func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := filepath.ToSlash(t.TempDir())
	reg := component.NewRegistry()
	config := &component.DevelopmentConfiguration{Name: "EX_D", SourceVersion: "1.6"}

	api := reg.Create("sap.com", "sap.com.security.api.sda",
		[]component.PublicPart{{Name: "api", Type: component.Compile}}, nil)
	api.Compartment = &component.Compartment{Name: "sap.com_SECURITY_1", Vendor: "sap.com", Configuration: config}

	dc := reg.Create("example.org", "lib/dc1", nil, []component.PublicPartReference{
		{Vendor: "sap.com", Component: "sap.com.security.api.sda", Part: "api"},
	})
	dc.OutputFolder = root + "/.dtc/t/1234/classes"
	dc.AddSourceFolder("src/packages")
	dc.Compartment = &component.Compartment{Name: "example.org_LIB_1", Vendor: "example.org", Configuration: config}

	w := &workspace{root: root, registry: reg, helper: provider.NewAntHelper(root, reg)}
	mkdir(t, w.helper.BaseLocation(dc)+"/src/packages")
	touch(t, w.helper.PartLocation(api, "api")+"/junit-4.12.jar")

	return w
}

func (w *workspace) get(vendor, name string) *component.Component {
	return w.registry.Get(vendor, name)
}

func newTestGenerator(t *testing.T, w *workspace, opts Options) *Generator {
	t.Helper()
	opts.Provider = w.helper
	if opts.Renderer == nil {
		opts.Renderer = templates.MustNewRenderer()
	}
	g, err := NewGenerator(opts)
	require.NoError(t, err)
	return g
}

// stubProvider returns fixed values for every component.
type stubProvider struct {
	base      string
	sources   []string
	tests     []string
	classpath []string
	err       error
}

func (p *stubProvider) BaseLocation(c *component.Component) string {
	return p.base + "/" + c.Vendor + "/" + c.Name
}

func (p *stubProvider) SourceFolders(*component.Component) ([]string, error) {
	return p.sources, p.err
}

func (p *stubProvider) TestSourceFolders(*component.Component) ([]string, error) {
	return p.tests, nil
}

func (p *stubProvider) ClassPath(*component.Component) ([]string, error) {
	return p.classpath, nil
}

// recordingSink captures written bytes and close calls.
type recordingSink struct {
	data     []byte
	closed   bool
	writeErr error
	closeErr error
}

func (s *recordingSink) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.data = append(s.data, p...)
	return len(p), nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return s.closeErr
}

// failingRenderer fails without writing.
type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, templates.Name, any) error {
	return errors.New("boom")
}

// partialRenderer writes the start of a project and then fails.
type partialRenderer struct{}

func (partialRenderer) Render(w io.Writer, _ templates.Name, _ any) error {
	if _, err := io.WriteString(w, "<project name="); err != nil {
		return err
	}
	return errors.New("template aborted")
}

var acceptAll = FilterFunc(func(*component.Component, []string, []string) bool { return true })
