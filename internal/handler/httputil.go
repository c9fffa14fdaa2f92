package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matthewbaird/adminkit/internal/query"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// parsePage extracts page_size and offset from query params.
func parsePage(r *http.Request) query.Page {
	p := query.Page{Limit: query.DefaultLimit}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > query.MaxLimit {
		p.Limit = query.MaxLimit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	return p
}

// parseFilterParams decodes filter[...] query params into raw wire
// values keyed by attribute name:
//
//	filter[status]=draft                  "draft"
//	filter[tags][]=a&filter[tags][]=b     ["a", "b"]
//	filter[rating][start]=3               {"start": "3"}
//
// Values stay untyped strings here; typing happens in the predicate
// compilers.
func parseFilterParams(q url.Values) map[string]any {
	filters := make(map[string]any)
	ranges := make(map[string]map[string]string)

	for key, vals := range q {
		rest, ok := strings.CutPrefix(key, "filter[")
		if !ok || len(vals) == 0 {
			continue
		}
		idx := strings.Index(rest, "]")
		if idx <= 0 {
			continue
		}
		attr, suffix := rest[:idx], rest[idx+1:]

		switch suffix {
		case "":
			if len(vals) == 1 {
				filters[attr] = vals[0]
			} else {
				filters[attr] = append([]string(nil), vals...)
			}
		case "[]":
			filters[attr] = append([]string(nil), vals...)
		case "[start]", "[end]":
			side := strings.Trim(suffix, "[]")
			if ranges[attr] == nil {
				ranges[attr] = make(map[string]string)
			}
			ranges[attr][side] = vals[0]
		}
	}

	// Range sides win over a scalar param for the same attribute.
	for attr, m := range ranges {
		filters[attr] = m
	}
	return filters
}
