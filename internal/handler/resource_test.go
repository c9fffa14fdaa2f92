package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/adminkit/internal/dashboard"
	"github.com/matthewbaird/adminkit/internal/mapping"
	"github.com/matthewbaird/adminkit/internal/schema"
	"github.com/matthewbaird/adminkit/internal/storage"
)

func testRouter(t *testing.T, mock func(sqlmock.Sqlmock)) http.Handler {
	t.Helper()

	s, err := schema.New("posts",
		schema.Attribute{Name: "id", Type: schema.Scalar(schema.KindString)},
		schema.Attribute{Name: "title", Type: schema.Scalar(schema.KindString)},
		schema.Attribute{Name: "status", Type: schema.Scalar(schema.KindEnum),
			Constraints: schema.Constraints{schema.ConstraintValues: []string{"draft", "published"}}},
		schema.Attribute{Name: "rating", Type: schema.Scalar(schema.KindInteger)},
	)
	require.NoError(t, err)

	res, err := dashboard.NewBuilder(s).
		Field("title", dashboard.FieldOpts{Searchable: true}).
		Field("status", dashboard.FieldOpts{}).
		Filter("status", dashboard.FilterOpts{}).
		Filter("rating", dashboard.FilterOpts{}).
		Build(mapping.Config{})
	require.NoError(t, err)

	registry := dashboard.NewRegistry()
	registry.Register(res)

	db, m, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if mock != nil {
		mock(m)
	}

	rh := NewResourceHandler(registry, storage.New(db, ""))
	r := chi.NewRouter()
	r.Get("/v1/{resource}", rh.List)
	r.Get("/v1/{resource}/schema", rh.Schema)
	return r
}

func TestListAppliesFilters(t *testing.T) {
	router := testRouter(t, func(m sqlmock.Sqlmock) {
		m.ExpectQuery(`SELECT \* FROM .posts. WHERE`).
			WithArgs("draft", int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow("p1", "Hello"))
		m.ExpectQuery(`SELECT COUNT`).
			WithArgs("draft", int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	})

	req := httptest.NewRequest("GET", "/v1/posts?filter[status]=draft&filter[rating][start]=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Hello", resp.Rows[0]["title"])
	assert.Equal(t, 1, resp.Total)
}

func TestListMalformedFilterIsIgnored(t *testing.T) {
	router := testRouter(t, func(m sqlmock.Sqlmock) {
		// Malformed rating compiles to no predicate, so no WHERE args.
		m.ExpectQuery(`SELECT \* FROM .posts.`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		m.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	})

	req := httptest.NewRequest("GET", "/v1/posts?filter[rating][start]=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListUnknownResource(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest("GET", "/v1/poosts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "did you mean")
}

func TestSchemaEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest("GET", "/v1/posts/schema", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp schemaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "posts", resp.Resource)
	assert.Equal(t, "id", resp.Identity)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "text", resp.Fields[0].Widget)
	assert.Equal(t, "select", resp.Fields[1].Widget)
	require.Len(t, resp.Filters, 2)
	assert.Equal(t, "select", resp.Filters[0].Kind)
	assert.Equal(t, "range", resp.Filters[1].Kind)
	assert.Equal(t, "number", resp.Filters[1].RangeKind)
	require.Len(t, resp.Filters[0].Options, 2)
	assert.Equal(t, "Draft", resp.Filters[0].Options[0].Label)
}
