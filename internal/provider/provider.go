// Package provider resolves the file system layout of development components
// inside an NWDI workspace: base locations, public part locations, source
// folders and the class path derived from public part references.
package provider

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// Folder layout below the workspace and below a component base location.
const (
	dcsFolder          = ".dtc/DCs"
	compFolder         = "_comp"
	publicPartFolder   = "gen/default/public"
	publicPartLibJava  = "lib/java"
	instrumentedFolder = "gen/instrumented-classes"
)

// AntHelper computes paths for components registered in a workspace.
type AntHelper struct {
	workspace string
	registry  *component.Registry
}

// NewAntHelper creates a helper for the given workspace root and registry.
func NewAntHelper(workspace string, registry *component.Registry) *AntHelper {
	return &AntHelper{
		workspace: filepath.ToSlash(workspace),
		registry:  registry,
	}
}

// Workspace returns the workspace root (forward slashes).
func (h *AntHelper) Workspace() string {
	return h.workspace
}

// BaseLocation returns <workspace>/.dtc/DCs/<vendor>/<name>.
func (h *AntHelper) BaseLocation(c *component.Component) string {
	return slashJoin(h.workspace, dcsFolder, c.Vendor, c.Name)
}

// PartLocation returns the folder holding the archives of the given public
// part: <base>/_comp/gen/default/public/<part>/lib/java.
func (h *AntHelper) PartLocation(c *component.Component, part string) string {
	return slashJoin(h.BaseLocation(c), compFolder, publicPartFolder, part, publicPartLibJava)
}

// InstrumentedDir returns <base>/_comp/gen/instrumented-classes.
func (h *AntHelper) InstrumentedDir(c *component.Component) string {
	return slashJoin(h.BaseLocation(c), compFolder, instrumentedFolder)
}

// SourceFolders returns the component's declared source folders that exist
// as directories, in declaration order and without duplicates. Relative
// folders are resolved against the component base location.
func (h *AntHelper) SourceFolders(c *component.Component) ([]string, error) {
	return h.existingFolders(c, c.SourceFolders)
}

// TestSourceFolders is like SourceFolders for the declared test source folders.
func (h *AntHelper) TestSourceFolders(c *component.Component) ([]string, error) {
	return h.existingFolders(c, c.TestSourceFolders)
}

func (h *AntHelper) existingFolders(c *component.Component, declared []string) ([]string, error) {
	seen := make(map[string]bool, len(declared))
	folders := make([]string, 0, len(declared))

	for _, folder := range declared {
		abs := h.resolve(c, folder)
		if seen[abs] {
			continue
		}
		seen[abs] = true

		ok, err := isDir(abs)
		if err != nil {
			return nil, fmt.Errorf("checking source folder %s: %w", abs, err)
		}
		if !ok {
			output.Debug("source folder does not exist", "component", c.Key(), "folder", abs)
			continue
		}
		folders = append(folders, abs)
	}

	return folders, nil
}

func (h *AntHelper) resolve(c *component.Component, folder string) string {
	if filepath.IsAbs(folder) {
		return filepath.ToSlash(filepath.Clean(folder))
	}
	return slashJoin(h.BaseLocation(c), folder)
}

// ClassPath returns the public part folders the component depends on,
// following references transitively. Only existing folders are returned,
// sorted lexicographically.
func (h *AntHelper) ClassPath(c *component.Component) ([]string, error) {
	g, parts, err := h.dependencyGraph(c)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = graph.DFS(g, c.Key(), func(hash string) bool {
		node, ok := parts[hash]
		if !ok {
			return false
		}

		location := h.PartLocation(node.owner, node.part)
		if exists, statErr := isDir(location); statErr == nil && exists {
			paths = append(paths, location)
		} else {
			output.Debug("public part folder missing", "component", c.Key(), "folder", location)
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("walking dependencies of %s: %w", c.Key(), err)
	}

	sort.Strings(paths)
	return paths, nil
}

// partNode is a vertex standing for one public part of a component.
type partNode struct {
	owner *component.Component
	part  string
}

// partHash keys part vertices apart from component keys. NWDI vendor
// names never contain a colon.
func partHash(c *component.Component, part string) string {
	return "part:" + c.Key() + ":" + part
}

// dependencyGraph builds the graph reachable from root. Component vertices
// point at the part vertices they reference; part vertices point back at
// their owning component so that its own references are followed.
func (h *AntHelper) dependencyGraph(root *component.Component) (graph.Graph[string, string], map[string]partNode, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	parts := make(map[string]partNode)

	if err := addVertex(g, root.Key()); err != nil {
		return nil, nil, err
	}

	queue := []*component.Component{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, ref := range current.References {
			target := h.registry.Get(ref.Vendor, ref.Component)
			if target == nil {
				output.Warn("referenced component is not registered",
					"component", current.Key(),
					"reference", ref.Key(),
				)
				continue
			}

			newTarget := !hasVertex(g, target.Key())
			if newTarget {
				if err := addVertex(g, target.Key()); err != nil {
					return nil, nil, err
				}
				queue = append(queue, target)
			}

			for _, part := range referencedParts(target, ref) {
				hash := partHash(target, part)
				if err := addVertex(g, hash); err != nil {
					return nil, nil, err
				}
				parts[hash] = partNode{owner: target, part: part}

				if err := addEdge(g, current.Key(), hash); err != nil {
					return nil, nil, err
				}
				if err := addEdge(g, hash, target.Key()); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return g, parts, nil
}

// referencedParts returns the named part, or every compile part of target
// when the reference names none.
func referencedParts(target *component.Component, ref component.PublicPartReference) []string {
	if ref.Part != "" {
		return []string{ref.Part}
	}

	var names []string
	for _, pp := range target.PublicParts {
		if pp.Type == component.Compile {
			names = append(names, pp.Name)
		}
	}
	return names
}

func hasVertex(g graph.Graph[string, string], hash string) bool {
	_, err := g.Vertex(hash)
	return err == nil
}

func addVertex(g graph.Graph[string, string], hash string) error {
	if err := g.AddVertex(hash); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("adding %s to dependency graph: %w", hash, err)
	}
	return nil
}

func addEdge(g graph.Graph[string, string], from, to string) error {
	if err := g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	return nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func slashJoin(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}
