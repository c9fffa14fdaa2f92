package schema

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Load reads resource attribute schemas from CUE packages under dir.
//
// Each top-level definition (#Post, #Product, ...) becomes one resource
// schema named by its snake_cased label. Field typing rules:
//
//	bool                      Boolean
//	int                       Integer
//	float / number            Float
//	string                    String
//	"a" | "b" | ...           Enum with a values constraint
//	[...T]                    Array of the element classification
//
// Field attributes refine the classification: @date() and @datetime() on
// strings, @decimal() on numbers, @belongs_to(name) and @has_many(name)
// for relations.
func Load(dir string) (map[string]*Schema, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, fmt.Errorf("no CUE packages found in %s", dir)
	}
	if insts[0].Err != nil {
		return nil, fmt.Errorf("loading CUE from %s: %w", dir, insts[0].Err)
	}

	ctx := cuecontext.New()
	val := ctx.BuildInstance(insts[0])
	if val.Err() != nil {
		return nil, fmt.Errorf("building CUE instance: %w", val.Err())
	}
	return parseSchemas(val)
}

func parseSchemas(val cue.Value) (map[string]*Schema, error) {
	schemas := make(map[string]*Schema)

	iter, err := val.Fields(cue.Definitions(true))
	if err != nil {
		return nil, err
	}
	for iter.Next() {
		label := iter.Selector().String()
		if !strings.HasPrefix(label, "#") {
			continue
		}
		name := toSnake(strings.TrimPrefix(label, "#"))

		attrs, err := parseAttributes(name, iter.Value())
		if err != nil {
			return nil, err
		}
		s, err := New(name, attrs...)
		if err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("no resource definitions found")
	}
	return schemas, nil
}

func parseAttributes(resource string, structVal cue.Value) ([]Attribute, error) {
	var attrs []Attribute

	iter, err := structVal.Fields(cue.Optional(true))
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", resource, err)
	}
	for iter.Next() {
		label := strings.TrimSuffix(iter.Selector().String(), "?")
		if strings.HasPrefix(label, "_") {
			continue
		}
		attr, err := classifyAttribute(label, iter.Value())
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", resource, err)
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func classifyAttribute(name string, val cue.Value) (Attribute, error) {
	attr := Attribute{Name: name, Constraints: Constraints{}}

	// Relations are declared purely by attribute, the carrier value is a
	// string id (or list of ids for has_many).
	if target, ok := attrTarget(val, "belongs_to"); ok {
		attr.Type = Scalar(KindBelongsTo)
		attr.Constraints[ConstraintTarget] = target
		return attr, nil
	}
	if target, ok := attrTarget(val, "has_many"); ok {
		attr.Type = Scalar(KindHasMany)
		attr.Constraints[ConstraintTarget] = target
		return attr, nil
	}

	if vals := enumValues(val); vals != nil {
		attr.Type = Scalar(KindEnum)
		attr.Constraints[ConstraintValues] = vals
		return attr, nil
	}

	if isCueList(val) {
		elemVal := val.LookupPath(cue.MakePath(cue.AnyIndex))
		elem := Scalar(KindString)
		if elemVal.Err() == nil {
			if vals := enumValues(elemVal); vals != nil {
				elem = Scalar(KindEnum)
				attr.Constraints[ConstraintValues] = vals
			} else if k, err := scalarKind(name, elemVal); err == nil {
				elem = Scalar(k)
			}
		}
		attr.Type = Array(elem)
		return attr, nil
	}

	k, err := scalarKind(name, val)
	if err != nil {
		return Attribute{}, err
	}
	attr.Type = Scalar(k)
	return attr, nil
}

func scalarKind(name string, val cue.Value) (Kind, error) {
	kind := val.IncompleteKind()
	switch {
	case kind&cue.BoolKind != 0:
		return KindBoolean, nil
	case kind&cue.IntKind != 0 && kind&cue.FloatKind == 0:
		if hasAttr(val, "decimal") {
			return KindDecimal, nil
		}
		return KindInteger, nil
	case kind&cue.NumberKind != 0:
		if hasAttr(val, "decimal") {
			return KindDecimal, nil
		}
		return KindFloat, nil
	case kind&cue.StringKind != 0:
		if hasAttr(val, "date") {
			return KindDate, nil
		}
		if hasAttr(val, "datetime") {
			return KindDateTime, nil
		}
		return KindString, nil
	default:
		return KindInvalid, fmt.Errorf("attribute %q: unsupported CUE kind %v", name, kind)
	}
}

func hasAttr(val cue.Value, name string) bool {
	a := val.Attribute(name)
	return a.Err() == nil
}

func attrTarget(val cue.Value, name string) (string, bool) {
	a := val.Attribute(name)
	if a.Err() != nil {
		return "", false
	}
	if a.NumArgs() > 0 {
		if s, err := a.String(0); err == nil {
			return s, true
		}
	}
	return "", true
}

// enumValues returns the string disjunction members of val, or nil when
// val is not an enum. Looks through AndOp wrapping introduced by
// unification (e.g. string & ("a" | "b")).
func enumValues(val cue.Value) []string {
	op, args := val.Expr()
	if op == cue.AndOp {
		for _, arg := range args {
			if vals := enumValues(arg); vals != nil {
				return vals
			}
		}
		return nil
	}
	if op != cue.OrOp || len(args) < 2 {
		return nil
	}
	values := make([]string, 0, len(args))
	for _, arg := range args {
		if s, err := arg.String(); err == nil {
			values = append(values, s)
			continue
		}
		d, ok := arg.Default()
		if !ok {
			return nil
		}
		s, err := d.String()
		if err != nil {
			return nil
		}
		values = append(values, s)
	}
	return values
}

func isCueList(val cue.Value) bool {
	if val.IncompleteKind() == cue.ListKind {
		return true
	}
	op, args := val.Expr()
	if op == cue.AndOp {
		for _, arg := range args {
			if arg.IncompleteKind() == cue.ListKind {
				return true
			}
		}
	}
	return false
}

func toSnake(s string) string {
	var out []rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			out = append(out, '_')
		}
		out = append(out, r)
	}
	return strings.ToLower(string(out))
}
