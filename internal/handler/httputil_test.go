package handler

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matthewbaird/adminkit/internal/query"
)

func TestParseFilterParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  map[string]any
	}{
		{
			"scalar",
			"filter[status]=draft",
			map[string]any{"status": "draft"},
		},
		{
			"list",
			"filter[tags][]=a&filter[tags][]=b",
			map[string]any{"tags": []string{"a", "b"}},
		},
		{
			"repeated scalar becomes list",
			"filter[status]=a&filter[status]=b",
			map[string]any{"status": []string{"a", "b"}},
		},
		{
			"range",
			"filter[rating][start]=3&filter[rating][end]=8",
			map[string]any{"rating": map[string]string{"start": "3", "end": "8"}},
		},
		{
			"half range",
			"filter[rating][start]=3",
			map[string]any{"rating": map[string]string{"start": "3"}},
		},
		{
			"mixed",
			"filter[status]=draft&filter[rating][start]=3&q=hello",
			map[string]any{
				"status": "draft",
				"rating": map[string]string{"start": "3"},
			},
		},
		{
			"non-filter params ignored",
			"sort=title&order=desc&page_size=10",
			map[string]any{},
		},
		{
			"malformed keys ignored",
			"filter[=x&filter=y",
			map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, parseFilterParams(vals))
		})
	}
}

func TestParsePage(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/posts?page_size=10&offset=30", nil)
	assert.Equal(t, query.Page{Limit: 10, Offset: 30}, parsePage(r))

	r = httptest.NewRequest("GET", "/v1/posts", nil)
	assert.Equal(t, query.Page{Limit: query.DefaultLimit}, parsePage(r))

	r = httptest.NewRequest("GET", "/v1/posts?page_size=9999&offset=-1", nil)
	assert.Equal(t, query.Page{Limit: query.MaxLimit}, parsePage(r))
}
