package mapping

import (
	"fmt"

	"github.com/matthewbaird/adminkit/internal/schema"
)

// MapperFunc is a pure custom mapping function. It returns the widget
// for the given type and constraints, or "" to pass on the attribute so
// resolution falls through to the next layer.
type MapperFunc func(t schema.TypeTag, c schema.Constraints) Widget

// Source is a validated custom mapping source: either a static table
// keyed by type tags, or a mapper function. Construct with TableSource
// or FuncSource; validation happens once there, never per lookup.
type Source struct {
	table map[string]Widget
	fn    MapperFunc
}

// TableSource builds a table-backed source. Keys must be well-formed
// type tags ("integer", "array(enum)", ...) and values non-empty widget
// identifiers; anything else fails registration immediately.
func TableSource(entries map[string]string) (*Source, error) {
	table := make(map[string]Widget, len(entries))
	for key, val := range entries {
		tag, err := schema.ParseTag(key)
		if err != nil {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("table source key %q is not a well-formed type tag", key),
				Err:    err,
			}
		}
		if val == "" {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("table source key %q maps to an empty widget identifier", key),
			}
		}
		// Canonical tag spelling so "array( enum )" and "array(enum)" agree.
		table[tag.String()] = Widget(val)
	}
	return &Source{table: table}, nil
}

// FuncSource builds a function-backed source. The two-argument shape of
// the mapper is enforced by the MapperFunc signature.
func FuncSource(fn MapperFunc) (*Source, error) {
	if fn == nil {
		return nil, &ConfigurationError{Reason: "function source is nil"}
	}
	return &Source{fn: fn}, nil
}

// lookup consults the source for one attribute. A function source that
// panics is recovered and wrapped with attribute and type context.
func (s *Source) lookup(attr schema.Attribute) (w Widget, err error) {
	if s.fn == nil {
		return s.table[attr.Type.String()], nil
	}
	defer func() {
		if r := recover(); r != nil {
			w = ""
			err = configErr(attr, "custom mapping function failed", fmt.Errorf("%v", r))
		}
	}()
	return s.fn(attr.Type, attr.Constraints), nil
}
