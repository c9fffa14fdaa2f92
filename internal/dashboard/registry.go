package dashboard

import "sort"

// Registry holds the built resources for one deployment. It is populated
// at startup and read-only afterwards, so concurrent reads need no
// locking.
type Registry struct {
	resources map[string]*Resource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]*Resource)}
}

// Register adds a built resource, keyed by its name.
func (r *Registry) Register(res *Resource) {
	r.resources[res.Name()] = res
}

// Resource returns the named resource, or nil when unknown.
func (r *Registry) Resource(name string) *Resource {
	return r.resources[name]
}

// Names returns registered resource names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
