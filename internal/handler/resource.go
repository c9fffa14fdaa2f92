// Package handler implements the HTTP admin API over registered
// resources.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/adminkit/internal/dashboard"
	"github.com/matthewbaird/adminkit/internal/query"
	"github.com/matthewbaird/adminkit/internal/storage"
	"github.com/matthewbaird/adminkit/internal/suggest"
)

// ResourceHandler serves list and schema endpoints for every registered
// resource.
type ResourceHandler struct {
	registry *dashboard.Registry
	store    *storage.Store
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(registry *dashboard.Registry, store *storage.Store) *ResourceHandler {
	return &ResourceHandler{registry: registry, store: store}
}

type listResponse struct {
	Rows   []map[string]any `json:"rows"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// List handles GET /v1/{resource}. Malformed filter input never fails
// the request; it compiles to no predicate for that field.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := query.Request{
		Filters: parseFilterParams(q),
		Search:  q.Get("q"),
		Sort:    q.Get("sort"),
		Desc:    q.Get("order") == "desc",
		Page:    parsePage(r),
	}

	desc := query.Assemble(r.Context(), res, req)

	rows, err := h.store.List(r.Context(), res.Name(), desc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	total, err := h.store.Count(r.Context(), res.Name(), desc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Rows:   rows,
		Total:  total,
		Limit:  desc.Page.Limit,
		Offset: desc.Page.Offset,
	})
}

type fieldDef struct {
	Attribute  string             `json:"attribute"`
	Widget     string             `json:"widget"`
	Label      string             `json:"label"`
	Options    []dashboard.Option `json:"options,omitempty"`
	Only       []string           `json:"only,omitempty"`
	Except     []string           `json:"except,omitempty"`
	Searchable bool               `json:"searchable,omitempty"`
}

type filterDef struct {
	Attribute string             `json:"attribute"`
	Kind      string             `json:"kind"`
	RangeKind string             `json:"range_kind,omitempty"`
	Label     string             `json:"label"`
	Options   []dashboard.Option `json:"options,omitempty"`
}

type schemaResponse struct {
	Resource string      `json:"resource"`
	Identity string      `json:"identity"`
	Fields   []fieldDef  `json:"fields"`
	Filters  []filterDef `json:"filters"`
}

// Schema handles GET /v1/{resource}/schema, serving the frozen field and
// filter configuration for UI clients.
func (h *ResourceHandler) Schema(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resource(w, r)
	if !ok {
		return
	}

	resp := schemaResponse{
		Resource: res.Name(),
		Identity: res.Identity(),
		Fields:   []fieldDef{},
		Filters:  []filterDef{},
	}
	for _, fc := range res.Fields() {
		resp.Fields = append(resp.Fields, fieldDef{
			Attribute:  fc.Attribute,
			Widget:     string(fc.Widget),
			Label:      fc.Label,
			Options:    fc.Options,
			Only:       fc.Only,
			Except:     fc.Except,
			Searchable: fc.Searchable,
		})
	}
	for _, fc := range res.Filters() {
		fd := filterDef{
			Attribute: fc.Attribute,
			Kind:      fc.Kind.String(),
			Label:     fc.Label,
			Options:   fc.Options,
		}
		if fc.Kind == dashboard.FilterRange {
			fd.RangeKind = fc.RangeKind.String()
		}
		resp.Filters = append(resp.Filters, fd)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ResourceHandler) resource(w http.ResponseWriter, r *http.Request) (*dashboard.Resource, bool) {
	name := chi.URLParam(r, "resource")
	res := h.registry.Resource(name)
	if res == nil {
		msg := "unknown resource: " + name
		if hint := suggest.From(name, h.registry.Names(), 3); hint != "" {
			msg += " (" + hint + ")"
		}
		writeError(w, http.StatusNotFound, "NOT_FOUND", msg)
		return nil, false
	}
	return res, true
}
