// Package schema defines the typed attribute model that dashboards are
// derived from.
//
// A Schema is built once per resource (programmatically or from CUE via
// Load) and consumed by the mapping resolver and the dashboard builder.
// It is never mutated after construction.
package schema

import (
	"fmt"
	"strings"
)

// Kind classifies an attribute type for widget and filter derivation.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindString
	KindInteger
	KindFloat
	KindDecimal
	KindDate
	KindDateTime
	KindEnum
	KindArray
	KindBelongsTo
	KindHasMany
)

// String returns the external identifier for the kind. These identifiers
// are also the key syntax accepted by table mapping sources.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindBelongsTo:
		return "belongs_to"
	case KindHasMany:
		return "has_many"
	default:
		return "invalid"
	}
}

// Numeric reports whether the kind carries a numeric value.
func (k Kind) Numeric() bool {
	switch k {
	case KindInteger, KindFloat, KindDecimal:
		return true
	default:
		return false
	}
}

// Relation reports whether the kind references another resource.
func (k Kind) Relation() bool {
	return k == KindBelongsTo || k == KindHasMany
}

// TypeTag is the closed type descriptor for an attribute: a scalar kind,
// a relation kind, or an array of another tag.
type TypeTag struct {
	Kind Kind
	Elem *TypeTag // non-nil only when Kind == KindArray
}

// Scalar builds a non-array tag.
func Scalar(k Kind) TypeTag {
	return TypeTag{Kind: k}
}

// Array builds an array tag over an element tag.
func Array(elem TypeTag) TypeTag {
	e := elem
	return TypeTag{Kind: KindArray, Elem: &e}
}

// IsArray reports whether the tag is an array type.
func (t TypeTag) IsArray() bool {
	return t.Kind == KindArray
}

// IsRelation reports whether the tag references another resource.
func (t TypeTag) IsRelation() bool {
	return t.Kind.Relation()
}

// String renders the tag in table-source key syntax, e.g. "integer" or
// "array(enum)".
func (t TypeTag) String() string {
	if t.Kind == KindArray {
		if t.Elem == nil {
			return "array(invalid)"
		}
		return "array(" + t.Elem.String() + ")"
	}
	return t.Kind.String()
}

// Equal reports structural equality of two tags.
func (t TypeTag) Equal(o TypeTag) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KindArray {
		return true
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

var kindNames = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := KindBoolean; k <= KindHasMany; k++ {
		m[k.String()] = k
	}
	return m
}()

// ParseTag parses the table-source key syntax: a bare kind identifier or
// recursively "array(<tag>)". Used to validate custom mapping tables at
// registration time.
func ParseTag(s string) (TypeTag, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutPrefix(s, "array("); ok {
		if !strings.HasSuffix(inner, ")") {
			return TypeTag{}, fmt.Errorf("malformed type tag %q: missing ')'", s)
		}
		elem, err := ParseTag(strings.TrimSuffix(inner, ")"))
		if err != nil {
			return TypeTag{}, err
		}
		return Array(elem), nil
	}
	k, ok := kindNames[s]
	if !ok || k == KindArray {
		return TypeTag{}, fmt.Errorf("unknown type tag %q", s)
	}
	return Scalar(k), nil
}

// Constraint keys recognized on attributes.
const (
	ConstraintValues   = "values"   // enumerated legal values, []string
	ConstraintRequired = "required" // bool
	ConstraintTarget   = "target"   // relation target resource, string
)

// Constraints holds schema-level restrictions on an attribute.
type Constraints map[string]any

// EnumValues returns the enumerated-values constraint in declaration
// order, or nil when the attribute is unconstrained.
func (c Constraints) EnumValues() []string {
	if c == nil {
		return nil
	}
	switch v := c[ConstraintValues].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// HasEnumValues reports whether an enumerated-values constraint is present.
func (c Constraints) HasEnumValues() bool {
	return len(c.EnumValues()) > 0
}

// Target returns the relation target resource name, if declared.
func (c Constraints) Target() string {
	if c == nil {
		return ""
	}
	s, _ := c[ConstraintTarget].(string)
	return s
}

// Attribute describes one typed attribute of a resource.
type Attribute struct {
	Name        string
	Type        TypeTag
	Constraints Constraints
}

// EnumValues returns the attribute's enumerated values, looking through
// arrays to the element constraint when the array itself carries none.
func (a Attribute) EnumValues() []string {
	return a.Constraints.EnumValues()
}

// Schema is the ordered attribute set of one resource.
type Schema struct {
	name  string
	attrs map[string]Attribute
	order []string
}

// New creates a schema from attributes in declaration order. Duplicate
// attribute names are an error.
func New(resource string, attrs ...Attribute) (*Schema, error) {
	s := &Schema{
		name:  resource,
		attrs: make(map[string]Attribute, len(attrs)),
	}
	for _, a := range attrs {
		if a.Name == "" {
			return nil, fmt.Errorf("schema %s: attribute with empty name", resource)
		}
		if _, dup := s.attrs[a.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate attribute %q", resource, a.Name)
		}
		s.attrs[a.Name] = a
		s.order = append(s.order, a.Name)
	}
	return s, nil
}

// MustNew is New panicking on error, for statically known schemas.
func MustNew(resource string, attrs ...Attribute) *Schema {
	s, err := New(resource, attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Resource returns the resource name the schema describes.
func (s *Schema) Resource() string {
	return s.name
}

// Attribute returns the named attribute and whether it exists.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	a, ok := s.attrs[name]
	return a, ok
}

// Names returns attribute names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of attributes.
func (s *Schema) Len() int {
	return len(s.order)
}
