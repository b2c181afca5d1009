package build

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"
	"github.com/weigo/NWDI-Cobertura-Plugin/internal/output"
)

// junitArchive matches JUnit archive file names.
var junitArchive = regexp.MustCompile(`^junit.*\.jar$`)

// errFound stops the directory walk on the first match.
var errFound = errors.New("found")

// Filter decides whether a descriptor is generated for a component.
type Filter interface {
	Accept(c *component.Component, sources, classpath []string) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(c *component.Component, sources, classpath []string) bool

// Accept calls f.
func (f FilterFunc) Accept(c *component.Component, sources, classpath []string) bool {
	return f(c, sources, classpath)
}

// EligibilityFilter accepts components that have sources and, unless
// RequireJUnit is false, a JUnit archive on their class path.
type EligibilityFilter struct {
	RequireJUnit bool
}

// DefaultFilter requires sources and a JUnit archive.
func DefaultFilter() *EligibilityFilter {
	return &EligibilityFilter{RequireJUnit: true}
}

// Accept implements Filter.
func (f *EligibilityFilter) Accept(c *component.Component, sources, classpath []string) bool {
	if len(sources) == 0 {
		output.Debug("no source folders, skipping", "component", c.Key())
		return false
	}

	if !f.RequireJUnit {
		return true
	}

	archive, ok := FindJUnitArchive(classpath)
	if !ok {
		output.Debug("could not find a JUnit jar on the class path, skipping", "component", c.Key())
		return false
	}

	output.Debug("found JUnit jar", "component", c.Key(), "archive", archive)
	return true
}

// FindJUnitArchive returns the first file matching junit*.jar below any of
// the given class path folders. Entries that are not directories are ignored.
func FindJUnitArchive(classpath []string) (string, bool) {
	for _, entry := range classpath {
		if archive, ok := findJUnitArchive(entry); ok {
			return archive, true
		}
		output.Debug("could not find a JUnit jar", "folder", entry)
	}
	return "", false
}

func findJUnitArchive(dir string) (string, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}

	var match string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees do not make the entry invalid.
			return nil
		}
		if !junitArchive.MatchString(d.Name()) || !isRegularFile(path, d) {
			return nil
		}
		match = filepath.ToSlash(path)
		return errFound
	})
	if errors.Is(err, errFound) {
		return match, true
	}
	return "", false
}

// isRegularFile reports whether d is a regular file or a symlink to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
