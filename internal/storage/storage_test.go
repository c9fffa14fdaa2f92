package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/adminkit/internal/dashboard"
	"github.com/matthewbaird/adminkit/internal/query"
)

func TestTranslateArgs(t *testing.T) {
	tests := []struct {
		name string
		pred query.Predicate
		args []any
	}{
		{"eq", query.Compare{Field: "status", Op: query.OpEQ, Value: "draft"}, []any{"draft"}},
		{"gte", query.Compare{Field: "rating", Op: query.OpGTE, Value: int64(3)}, []any{int64(3)}},
		{"lte", query.Compare{Field: "rating", Op: query.OpLTE, Value: int64(8)}, []any{int64(8)}},
		{"in", query.In{Field: "tags", Values: []any{"a", "b"}}, []any{"a", "b"}},
		{"contains", query.Contains{Field: "title", Term: "go"}, []any{"%go%"}},
		{
			"and",
			query.And{Preds: []query.Predicate{
				query.Compare{Field: "a", Op: query.OpGTE, Value: 1},
				query.Compare{Field: "a", Op: query.OpLTE, Value: 2},
			}},
			[]any{1, 2},
		},
		{
			"or",
			query.Or{Preds: []query.Predicate{
				query.Compare{Field: "a", Op: query.OpEQ, Value: 1},
				query.Compare{Field: "b", Op: query.OpEQ, Value: 2},
			}},
			[]any{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, args := Translate(tt.pred).Query()
			assert.NotEmpty(t, stmt)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestStoreList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM .posts. WHERE`).
		WithArgs("draft").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
			AddRow("p1", "Hello", "draft").
			AddRow("p2", "World", "draft"))

	s := New(db, "")
	rows, err := s.List(context.Background(), "posts", query.Descriptor{
		Predicates: []query.Predicate{
			query.Compare{Field: "status", Op: query.OpEQ, Value: "draft"},
		},
		Sort: dashboard.Sort{Field: "created_at", Desc: true},
		Page: query.Page{Limit: 20},
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0]["id"])
	assert.Equal(t, "Hello", rows[0]["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListCombinesSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM .posts. WHERE`).
		WithArgs("draft", "%go%", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := New(db, "")
	_, err = s.List(context.Background(), "posts", query.Descriptor{
		Predicates: []query.Predicate{
			query.Compare{Field: "status", Op: query.OpEQ, Value: "draft"},
		},
		Search: query.Or{Preds: []query.Predicate{
			query.Contains{Field: "title", Term: "go"},
			query.Contains{Field: "body", Term: "go"},
		}},
		Sort: dashboard.Sort{Field: "id"},
		Page: query.Page{Limit: 20},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	s := New(db, "")
	n, err := s.Count(context.Background(), "posts", query.Descriptor{
		Predicates: []query.Predicate{
			query.Compare{Field: "rating", Op: query.OpGTE, Value: int64(3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListNoPredicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM .posts.`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p1"))

	s := New(db, "")
	rows, err := s.List(context.Background(), "posts", query.Descriptor{
		Sort: dashboard.Sort{Field: "id"},
		Page: query.Page{Limit: 20},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
