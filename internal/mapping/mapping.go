// Package mapping resolves attribute types to widget modules.
//
// Resolution is layered: an explicit per-field override wins outright,
// then a scope-specific custom source, then a global custom source, then
// the built-in derivation table. All resolution runs at dashboard build
// time; a mapping that cannot be resolved is a fatal ConfigurationError
// before any request is served.
package mapping

import (
	"fmt"

	"github.com/matthewbaird/adminkit/internal/schema"
)

// Widget identifies the UI widget module bound to a field. Rendering is
// out of scope here; widgets are referenced by identifier only.
type Widget string

// Built-in widget modules.
const (
	WidgetBoolean     Widget = "boolean"
	WidgetText        Widget = "text"
	WidgetTextarea    Widget = "textarea"
	WidgetSelect      Widget = "select"
	WidgetMultiSelect Widget = "multiselect"
	WidgetNumber      Widget = "number"
	WidgetDate        Widget = "date"
	WidgetDateTime    Widget = "datetime"
	WidgetBelongsTo   Widget = "belongs_to"
	WidgetHasMany     Widget = "has_many"
)

var builtinWidgets = map[Widget]bool{
	WidgetBoolean:     true,
	WidgetText:        true,
	WidgetTextarea:    true,
	WidgetSelect:      true,
	WidgetMultiSelect: true,
	WidgetNumber:      true,
	WidgetDate:        true,
	WidgetDateTime:    true,
	WidgetBelongsTo:   true,
	WidgetHasMany:     true,
}

// Config holds the custom mapping configuration for one deployment. It is
// constructed once at startup and injected into the dashboard builder;
// the zero value means built-in defaults only.
type Config struct {
	// Scoped is consulted first, Global second. Either may be nil.
	Scoped *Source
	Global *Source

	// CustomWidgets names additional widget identifiers that satisfy the
	// widget contract, so sources and overrides may return them.
	CustomWidgets []Widget
}

// knownWidget reports whether w satisfies the widget contract under cfg.
func (c Config) knownWidget(w Widget) bool {
	if builtinWidgets[w] {
		return true
	}
	for _, cw := range c.CustomWidgets {
		if cw == w {
			return true
		}
	}
	return false
}

// ConfigurationError reports an unresolvable or malformed mapping. It is
// fatal: dashboard builds stop on the first one.
type ConfigurationError struct {
	Attribute string
	Type      string // resolved type tag, "" when not attribute-bound
	Reason    string
	Err       error // underlying failure from a function source, if any
}

func (e *ConfigurationError) Error() string {
	msg := "mapping: " + e.Reason
	if e.Attribute != "" {
		msg = fmt.Sprintf("mapping: attribute %q (%s): %s", e.Attribute, e.Type, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(attr schema.Attribute, reason string, err error) *ConfigurationError {
	return &ConfigurationError{
		Attribute: attr.Name,
		Type:      attr.Type.String(),
		Reason:    reason,
		Err:       err,
	}
}

// Resolve maps an attribute to its widget module. An explicit non-empty
// override wins; otherwise the scoped source, the global source, and the
// built-in derivation table are consulted in that order.
func Resolve(cfg Config, attr schema.Attribute, override Widget) (Widget, error) {
	if override != "" {
		if !cfg.knownWidget(override) {
			return "", configErr(attr, fmt.Sprintf("override widget %q does not satisfy the widget contract", override), nil)
		}
		return override, nil
	}

	for _, src := range []*Source{cfg.Scoped, cfg.Global} {
		if src == nil {
			continue
		}
		w, err := src.lookup(attr)
		if err != nil {
			return "", err
		}
		if w == "" {
			continue
		}
		if !cfg.knownWidget(w) {
			return "", configErr(attr, fmt.Sprintf("custom source returned widget %q which does not satisfy the widget contract", w), nil)
		}
		return w, nil
	}

	return DefaultWidget(attr)
}

// DefaultWidget is the built-in type-to-widget derivation table.
func DefaultWidget(attr schema.Attribute) (Widget, error) {
	return defaultWidget(attr, attr.Type)
}

func defaultWidget(attr schema.Attribute, t schema.TypeTag) (Widget, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return WidgetBoolean, nil
	case schema.KindString, schema.KindEnum:
		if attr.Constraints.HasEnumValues() {
			return WidgetSelect, nil
		}
		return WidgetText, nil
	case schema.KindInteger, schema.KindFloat, schema.KindDecimal:
		if attr.Constraints.HasEnumValues() {
			return WidgetSelect, nil
		}
		return WidgetNumber, nil
	case schema.KindDate:
		return WidgetDate, nil
	case schema.KindDateTime:
		return WidgetDateTime, nil
	case schema.KindBelongsTo:
		return WidgetBelongsTo, nil
	case schema.KindHasMany:
		return WidgetHasMany, nil
	case schema.KindArray:
		if attr.Constraints.HasEnumValues() {
			return WidgetMultiSelect, nil
		}
		if t.Elem != nil {
			return defaultWidget(attr, *t.Elem)
		}
	}
	return "", configErr(attr, "no built-in widget mapping; set an explicit widget override for this field", nil)
}
