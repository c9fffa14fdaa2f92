package dashboard

import "context"

// Resource is the frozen configuration of one resource: field and filter
// tables in declaration order plus sort rules. Read-only after Build.
type Resource struct {
	name     string
	identity string

	fields     map[string]FieldConfig
	fieldOrder []string

	filters     map[string]FilterConfig
	filterOrder []string

	searchable  []string
	defaultSort *Sort
	sortFunc    SortFunc
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return r.name
}

// Identity returns the identity attribute, the final sort fallback.
func (r *Resource) Identity() string {
	return r.identity
}

// Field returns the named field config and whether it exists.
func (r *Resource) Field(name string) (FieldConfig, bool) {
	fc, ok := r.fields[name]
	return fc, ok
}

// Fields returns field configs in declaration order.
func (r *Resource) Fields() []FieldConfig {
	out := make([]FieldConfig, len(r.fieldOrder))
	for i, name := range r.fieldOrder {
		out[i] = r.fields[name]
	}
	return out
}

// Filter returns the named filter config and whether it exists.
func (r *Resource) Filter(name string) (FilterConfig, bool) {
	fc, ok := r.filters[name]
	return fc, ok
}

// Filters returns filter configs in declaration order.
func (r *Resource) Filters() []FilterConfig {
	out := make([]FilterConfig, len(r.filterOrder))
	for i, name := range r.filterOrder {
		out[i] = r.filters[name]
	}
	return out
}

// Searchable returns the attribute names of searchable fields, in
// declaration order.
func (r *Resource) Searchable() []string {
	out := make([]string, len(r.searchable))
	copy(out, r.searchable)
	return out
}

// ResolveSort applies the sort precedence: an explicit requested sort,
// then the request-computed sort function, then the static default, then
// the identity attribute ascending.
func (r *Resource) ResolveSort(ctx context.Context, requested *Sort) Sort {
	if requested != nil && requested.Field != "" {
		return *requested
	}
	if r.sortFunc != nil {
		if s, ok := r.sortFunc(ctx); ok {
			return s
		}
	}
	if r.defaultSort != nil {
		return *r.defaultSort
	}
	return Sort{Field: r.identity}
}
