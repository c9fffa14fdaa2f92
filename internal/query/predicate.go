// Package query compiles UI-supplied filter values into predicates and
// assembles per-request query descriptors.
//
// Everything here is stateless: compilation reads only frozen dashboard
// configuration and the current request's raw values, performs no I/O,
// and is safe under arbitrary concurrent request volume.
package query

import (
	"fmt"
	"strings"
)

// Op enumerates comparison operators at the predicate level.
type Op int

const (
	OpEQ Op = iota
	OpGTE
	OpLTE
)

// String returns the SQL-like operator symbol.
func (op Op) String() string {
	switch op {
	case OpEQ:
		return "="
	case OpGTE:
		return ">="
	case OpLTE:
		return "<="
	default:
		return "?"
	}
}

// Predicate is an abstract query condition consumed by the storage
// layer. Nodes are plain values; identical raw input always compiles to
// structurally equal predicates.
type Predicate interface {
	fmt.Stringer
	predicate()
}

// Compare is a single comparison against an attribute.
type Compare struct {
	Field string
	Op    Op
	Value any
}

func (Compare) predicate() {}

func (p Compare) String() string {
	return fmt.Sprintf("%s %s %v", p.Field, p.Op, p.Value)
}

// In is a membership test; matching is order-independent.
type In struct {
	Field  string
	Values []any
}

func (In) predicate() {}

func (p In) String() string {
	parts := make([]string, len(p.Values))
	for i, v := range p.Values {
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s IN [%s]", p.Field, strings.Join(parts, ", "))
}

// Contains is a substring match used for search predicates.
type Contains struct {
	Field string
	Term  string
}

func (Contains) predicate() {}

func (p Contains) String() string {
	return fmt.Sprintf("%s CONTAINS %q", p.Field, p.Term)
}

// And is the conjunction of its children.
type And struct {
	Preds []Predicate
}

func (And) predicate() {}

func (p And) String() string {
	return joinPreds(p.Preds, " AND ")
}

// Or is the disjunction of its children.
type Or struct {
	Preds []Predicate
}

func (Or) predicate() {}

func (p Or) String() string {
	return joinPreds(p.Preds, " OR ")
}

func joinPreds(preds []Predicate, sep string) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
