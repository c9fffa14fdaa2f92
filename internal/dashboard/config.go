// Package dashboard builds the frozen field and filter configuration for
// a resource.
//
// A Builder is populated once per resource at program load time, then
// Build resolves every declared field and filter against the attribute
// schema and the mapping configuration, failing fast on the first
// ConfigurationError. The resulting Resource is read-only and safe for
// concurrent use without locking.
package dashboard

import (
	"context"

	"github.com/matthewbaird/adminkit/internal/mapping"
)

// FilterKind selects the predicate compilation strategy for a filter.
type FilterKind int

const (
	FilterAuto FilterKind = iota // derive from the attribute type
	FilterBoolean
	FilterSelect
	FilterMultiSelect
	FilterRange
)

// String returns the external identifier for the filter kind.
func (k FilterKind) String() string {
	switch k {
	case FilterBoolean:
		return "boolean"
	case FilterSelect:
		return "select"
	case FilterMultiSelect:
		return "multiselect"
	case FilterRange:
		return "range"
	default:
		return "auto"
	}
}

// RangeKind governs how a Range filter parses its start/end values.
type RangeKind int

const (
	RangeNone RangeKind = iota
	RangeNumber
	RangeDate
	RangeDateTime
)

// String returns the external identifier for the range kind.
func (k RangeKind) String() string {
	switch k {
	case RangeNumber:
		return "number"
	case RangeDate:
		return "date"
	case RangeDateTime:
		return "datetime"
	default:
		return "none"
	}
}

// Option is one selectable value of a select or multiselect field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldConfig binds an attribute to its widget module and display
// metadata. Built once, immutable afterwards.
type FieldConfig struct {
	Attribute  string         `json:"attribute"`
	Widget     mapping.Widget `json:"widget"`
	Label      string         `json:"label"`
	Options    []Option       `json:"options,omitempty"`
	Only       []string       `json:"only,omitempty"`
	Except     []string       `json:"except,omitempty"`
	Searchable bool           `json:"searchable,omitempty"`
}

// VisibleOn reports whether the field appears on the named page, applying
// the only/except lists. An empty only list means all pages.
func (f FieldConfig) VisibleOn(page string) bool {
	for _, p := range f.Except {
		if p == page {
			return false
		}
	}
	if len(f.Only) == 0 {
		return true
	}
	for _, p := range f.Only {
		if p == page {
			return true
		}
	}
	return false
}

// FilterConfig binds an attribute to its predicate compilation strategy.
// Built once, immutable afterwards.
type FilterConfig struct {
	Attribute string     `json:"attribute"`
	Kind      FilterKind `json:"-"`
	RangeKind RangeKind  `json:"-"`
	Label     string     `json:"label"`
	Options   []Option   `json:"options,omitempty"`
}

// Sort is an ordering specification over one attribute.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// SortFunc computes a resource-level sort from request context. The
// second return is false when the function has no opinion for this
// request.
type SortFunc func(ctx context.Context) (Sort, bool)
