package component

// Registry holds the development components known to a workspace.
// Iteration order is the order components were first added.
type Registry struct {
	byKey map[string]*Component
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Component)}
}

// Create creates a component, adds it to the registry and returns it.
func (r *Registry) Create(vendor, name string, parts []PublicPart, refs []PublicPartReference) *Component {
	c := New(vendor, name, parts, refs)
	r.Add(c)
	return c
}

// Add registers c. A component with the same key replaces the previous one
// but keeps its position. Add reports whether an entry was replaced.
func (r *Registry) Add(c *Component) bool {
	key := c.Key()
	_, replaced := r.byKey[key]
	if !replaced {
		r.order = append(r.order, key)
	}
	r.byKey[key] = c
	return replaced
}

// Get returns the component with the given vendor and name, or nil.
func (r *Registry) Get(vendor, name string) *Component {
	return r.byKey[Key(vendor, name)]
}

// All returns all registered components in registration order.
func (r *Registry) All() []*Component {
	all := make([]*Component, 0, len(r.order))
	for _, key := range r.order {
		all = append(all, r.byKey[key])
	}
	return all
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.order)
}
