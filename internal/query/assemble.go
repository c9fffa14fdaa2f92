package query

import (
	"context"
	"strings"

	"github.com/matthewbaird/adminkit/internal/dashboard"
)

// Pagination defaults, matching the HTTP surface.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a consumed page specification.
type Page struct {
	Limit  int
	Offset int
}

// Request carries one request's raw query inputs. Values in Filters are
// untyped wire values keyed by attribute name.
type Request struct {
	Filters map[string]any
	Search  string
	Sort    string
	Desc    bool
	Page    Page
}

// Descriptor is the assembled, immutable query description handed to the
// storage layer. Predicates AND-combine; Search, when non-nil, ANDs with
// them as a group.
type Descriptor struct {
	Predicates []Predicate
	Search     Predicate
	Sort       dashboard.Sort
	Page       Page
}

// Assemble compiles a request against a resource into a Descriptor. It
// never mutates its inputs and recompiles from scratch per request.
func Assemble(ctx context.Context, res *dashboard.Resource, req Request) Descriptor {
	d := Descriptor{
		Page: clampPage(req.Page),
	}

	// Filters compile in declaration order; nil results are dropped.
	for _, fc := range res.Filters() {
		raw, ok := req.Filters[fc.Attribute]
		if !ok {
			continue
		}
		if p := Compile(fc, raw); p != nil {
			d.Predicates = append(d.Predicates, p)
		}
	}

	d.Search = searchPredicate(res, req.Search)

	var requested *dashboard.Sort
	if req.Sort != "" {
		if _, ok := res.Field(req.Sort); ok || req.Sort == res.Identity() {
			requested = &dashboard.Sort{Field: req.Sort, Desc: req.Desc}
		}
	}
	d.Sort = res.ResolveSort(ctx, requested)

	return d
}

// searchPredicate builds one contains predicate per searchable field and
// OR-combines them. A blank term or an unsearchable resource yields nil.
func searchPredicate(res *dashboard.Resource, term string) Predicate {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	fields := res.Searchable()
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return Contains{Field: fields[0], Term: term}
	}
	preds := make([]Predicate, len(fields))
	for i, f := range fields {
		preds[i] = Contains{Field: f, Term: term}
	}
	return Or{Preds: preds}
}

func clampPage(p Page) Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
