package build

import "github.com/weigo/NWDI-Cobertura-Plugin/internal/core/component"

// Entry maps a component to its generated descriptor.
type Entry struct {
	Component *component.Component
	Path      string
}

// Diagnostic records a component that was not generated.
type Diagnostic struct {
	// Component is the vendor/name of the component, empty when unknown.
	Component string

	// Message describes the problem.
	Message string

	// Err is the failure, nil when the component was skipped.
	Err error
}

// Failed reports whether the diagnostic is a failure rather than a skip.
func (d Diagnostic) Failed() bool {
	return d.Err != nil
}

// Result is the outcome of a generation run.
type Result struct {
	// Entries holds generated descriptors in generation order.
	Entries []Entry

	// Skipped holds components rejected by the filter.
	Skipped []*component.Component

	// Diagnostics holds invalid and failed components.
	Diagnostics []Diagnostic
}

// Len returns the number of generated descriptors.
func (r *Result) Len() int {
	return len(r.Entries)
}

// Paths returns the descriptor paths in generation order.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		paths = append(paths, e.Path)
	}
	return paths
}

// Lookup returns the descriptor path of the component with the given key.
func (r *Result) Lookup(key string) (string, bool) {
	for _, e := range r.Entries {
		if e.Component.Key() == key {
			return e.Path, true
		}
	}
	return "", false
}

// HasFailures reports whether any component failed.
func (r *Result) HasFailures() bool {
	for _, d := range r.Diagnostics {
		if d.Failed() {
			return true
		}
	}
	return false
}

// Failures returns the failed diagnostics.
func (r *Result) Failures() []Diagnostic {
	var failed []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Failed() {
			failed = append(failed, d)
		}
	}
	return failed
}

// add records a generated descriptor. A component generated twice keeps its
// first position with the latest path.
func (r *Result) add(c *component.Component, path string) {
	for i := range r.Entries {
		if r.Entries[i].Component.Key() == c.Key() {
			r.Entries[i] = Entry{Component: c, Path: path}
			return
		}
	}
	r.Entries = append(r.Entries, Entry{Component: c, Path: path})
}
