// Package storage realizes query descriptors against a SQL database
// using the ent dialect/sql builder.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/matthewbaird/adminkit/internal/query"
)

// Store executes descriptors against one database handle.
type Store struct {
	db      *sql.DB
	dialect string
}

// New creates a store. An empty dialect defaults to SQLite.
func New(db *sql.DB, dialectName string) *Store {
	if dialectName == "" {
		dialectName = dialect.SQLite
	}
	return &Store{db: db, dialect: dialectName}
}

// List runs the descriptor and returns rows as column-keyed maps, the
// shape the HTTP layer serializes to JSON.
func (s *Store) List(ctx context.Context, table string, d query.Descriptor) ([]map[string]any, error) {
	sel := s.selector(table, d, "*")
	if d.Sort.Field != "" {
		if d.Sort.Desc {
			sel.OrderBy(entsql.Desc(d.Sort.Field))
		} else {
			sel.OrderBy(entsql.Asc(d.Sort.Field))
		}
	}
	sel.Limit(d.Page.Limit).Offset(d.Page.Offset)

	stmt, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()
	return scanMaps(rows)
}

// Count runs the descriptor without ordering or pagination and returns
// the matching row count.
func (s *Store) Count(ctx context.Context, table string, d query.Descriptor) (int, error) {
	sel := s.selector(table, d, entsql.Count("*"))

	stmt, args := sel.Query()
	var n int
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

func (s *Store) selector(table string, d query.Descriptor, columns ...string) *entsql.Selector {
	sel := entsql.Dialect(s.dialect).
		Select(columns...).
		From(entsql.Table(table))

	preds := make([]*entsql.Predicate, 0, len(d.Predicates)+1)
	for _, p := range d.Predicates {
		preds = append(preds, Translate(p))
	}
	if d.Search != nil {
		preds = append(preds, Translate(d.Search))
	}
	switch len(preds) {
	case 0:
	case 1:
		sel.Where(preds[0])
	default:
		sel.Where(entsql.And(preds...))
	}
	return sel
}

// Translate converts a predicate tree into an ent SQL predicate.
func Translate(p query.Predicate) *entsql.Predicate {
	switch p := p.(type) {
	case query.Compare:
		switch p.Op {
		case query.OpGTE:
			return entsql.GTE(p.Field, p.Value)
		case query.OpLTE:
			return entsql.LTE(p.Field, p.Value)
		default:
			return entsql.EQ(p.Field, p.Value)
		}
	case query.In:
		return entsql.In(p.Field, p.Values...)
	case query.Contains:
		return entsql.ContainsFold(p.Field, p.Term)
	case query.And:
		return entsql.And(translateAll(p.Preds)...)
	case query.Or:
		return entsql.Or(translateAll(p.Preds)...)
	default:
		// The predicate set is closed; an unknown node matches nothing.
		return entsql.False()
	}
}

func translateAll(preds []query.Predicate) []*entsql.Predicate {
	out := make([]*entsql.Predicate, len(preds))
	for i, p := range preds {
		out[i] = Translate(p)
	}
	return out
}

func scanMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			v := vals[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[c] = v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
