package dashboard

import (
	"github.com/matthewbaird/adminkit/internal/mapping"
	"github.com/matthewbaird/adminkit/internal/schema"
	"github.com/matthewbaird/adminkit/internal/suggest"
)

// FieldOpts carries the declared metadata for one field. Zero values mean
// "derive automatically".
type FieldOpts struct {
	Label      string
	Widget     mapping.Widget // explicit override, wins over all sources
	Options    []Option
	Only       []string
	Except     []string
	Searchable bool
}

// FilterOpts carries the declared metadata for one filter.
type FilterOpts struct {
	Label   string
	Kind    FilterKind // explicit override; FilterAuto derives from the type
	Options []Option
}

// Builder accumulates field and filter declarations for one resource.
// Declaration order is preserved into the built Resource.
type Builder struct {
	schema   *schema.Schema
	identity string

	fieldNames  []string
	fieldOpts   map[string]FieldOpts
	filterNames []string
	filterOpts  map[string]FilterOpts

	defaultSort *Sort
	sortFunc    SortFunc
}

// NewBuilder starts a dashboard declaration over the given schema.
func NewBuilder(s *schema.Schema) *Builder {
	return &Builder{
		schema:     s,
		identity:   "id",
		fieldOpts:  make(map[string]FieldOpts),
		filterOpts: make(map[string]FilterOpts),
	}
}

// Identity sets the identity attribute used as the sort fallback.
// Defaults to "id".
func (b *Builder) Identity(attr string) *Builder {
	b.identity = attr
	return b
}

// Field declares a field. Re-declaring a name replaces its options but
// keeps its original position.
func (b *Builder) Field(attr string, opts FieldOpts) *Builder {
	if _, seen := b.fieldOpts[attr]; !seen {
		b.fieldNames = append(b.fieldNames, attr)
	}
	b.fieldOpts[attr] = opts
	return b
}

// Filter declares a filter.
func (b *Builder) Filter(attr string, opts FilterOpts) *Builder {
	if _, seen := b.filterOpts[attr]; !seen {
		b.filterNames = append(b.filterNames, attr)
	}
	b.filterOpts[attr] = opts
	return b
}

// DefaultSort sets the static resource-level default sort.
func (b *Builder) DefaultSort(attr string, desc bool) *Builder {
	b.defaultSort = &Sort{Field: attr, Desc: desc}
	return b
}

// SortWith sets a request-computed sort function, consulted before the
// static default.
func (b *Builder) SortWith(fn SortFunc) *Builder {
	b.sortFunc = fn
	return b
}

// Build resolves every declaration against the schema and mapping
// configuration and returns the frozen Resource. It fails on the first
// ConfigurationError; nothing partial is ever returned.
func (b *Builder) Build(cfg mapping.Config) (*Resource, error) {
	r := &Resource{
		name:     b.schema.Resource(),
		identity: b.identity,
		fields:   make(map[string]FieldConfig, len(b.fieldNames)),
		filters:  make(map[string]FilterConfig, len(b.filterNames)),
		sortFunc: b.sortFunc,
	}
	if b.defaultSort != nil {
		s := *b.defaultSort
		r.defaultSort = &s
	}

	for _, name := range b.fieldNames {
		fc, err := b.buildField(cfg, name, b.fieldOpts[name])
		if err != nil {
			return nil, err
		}
		r.fields[name] = fc
		r.fieldOrder = append(r.fieldOrder, name)
		if fc.Searchable {
			r.searchable = append(r.searchable, name)
		}
	}

	for _, name := range b.filterNames {
		fc, err := b.buildFilter(name, b.filterOpts[name])
		if err != nil {
			return nil, err
		}
		r.filters[name] = fc
		r.filterOrder = append(r.filterOrder, name)
	}

	return r, nil
}

func (b *Builder) buildField(cfg mapping.Config, name string, opts FieldOpts) (FieldConfig, error) {
	attr, err := b.lookup(name)
	if err != nil {
		return FieldConfig{}, err
	}

	widget, err := mapping.Resolve(cfg, attr, opts.Widget)
	if err != nil {
		return FieldConfig{}, err
	}

	fc := FieldConfig{
		Attribute:  name,
		Widget:     widget,
		Label:      opts.Label,
		Options:    opts.Options,
		Only:       opts.Only,
		Except:     opts.Except,
		Searchable: opts.Searchable,
	}
	if fc.Label == "" {
		fc.Label = Humanize(name)
	}
	if fc.Options == nil && (widget == mapping.WidgetSelect || widget == mapping.WidgetMultiSelect) {
		fc.Options = deriveOptions(attr)
	}
	return fc, nil
}

func (b *Builder) buildFilter(name string, opts FilterOpts) (FilterConfig, error) {
	attr, err := b.lookup(name)
	if err != nil {
		return FilterConfig{}, err
	}

	kind := opts.Kind
	if kind == FilterAuto {
		kind, err = deriveFilterKind(attr)
		if err != nil {
			return FilterConfig{}, err
		}
	}

	fc := FilterConfig{
		Attribute: name,
		Kind:      kind,
		Label:     opts.Label,
		Options:   opts.Options,
	}
	if fc.Label == "" {
		fc.Label = Humanize(name)
	}
	if kind == FilterRange {
		rk, err := deriveRangeKind(attr)
		if err != nil {
			return FilterConfig{}, err
		}
		fc.RangeKind = rk
	}
	if fc.Options == nil && (kind == FilterSelect || kind == FilterMultiSelect) {
		fc.Options = deriveOptions(attr)
	}
	return fc, nil
}

func (b *Builder) lookup(name string) (schema.Attribute, error) {
	attr, ok := b.schema.Attribute(name)
	if !ok {
		reason := "attribute not present in schema"
		if hint := suggest.From(name, b.schema.Names(), 3); hint != "" {
			reason += " (" + hint + ")"
		}
		return schema.Attribute{}, &mapping.ConfigurationError{
			Attribute: name,
			Reason:    reason,
		}
	}
	return attr, nil
}

// deriveOptions maps each enumerated value to an Option with a humanized
// label, preserving constraint declaration order.
func deriveOptions(attr schema.Attribute) []Option {
	values := attr.EnumValues()
	if len(values) == 0 {
		return nil
	}
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: Humanize(v)}
	}
	return opts
}

// deriveFilterKind is the automatic filter derivation table.
func deriveFilterKind(attr schema.Attribute) (FilterKind, error) {
	t := attr.Type
	switch {
	case t.Kind == schema.KindBoolean:
		return FilterBoolean, nil
	case t.Kind == schema.KindEnum,
		t.Kind == schema.KindString && attr.Constraints.HasEnumValues():
		return FilterSelect, nil
	case t.Kind.Numeric(), t.Kind == schema.KindDate, t.Kind == schema.KindDateTime:
		return FilterRange, nil
	case t.IsArray() && attr.Constraints.HasEnumValues():
		return FilterMultiSelect, nil
	}
	return FilterAuto, &mapping.ConfigurationError{
		Attribute: attr.Name,
		Type:      t.String(),
		Reason: "no automatic filter derivation; supported automatically: boolean, " +
			"enum or string with enumerated values (select), integer/float/decimal (number range), " +
			"date, datetime, array with enumerated values (multiselect); " +
			"set an explicit filter kind for anything else",
	}
}

// deriveRangeKind picks the parse discipline for a range filter.
func deriveRangeKind(attr schema.Attribute) (RangeKind, error) {
	switch {
	case attr.Type.Kind.Numeric():
		return RangeNumber, nil
	case attr.Type.Kind == schema.KindDate:
		return RangeDate, nil
	case attr.Type.Kind == schema.KindDateTime:
		return RangeDateTime, nil
	}
	return RangeNone, &mapping.ConfigurationError{
		Attribute: attr.Name,
		Type:      attr.Type.String(),
		Reason:    "range filters require a numeric, date, or datetime attribute",
	}
}
