package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/matthewbaird/adminkit/internal/dashboard"
)

// Textual formats accepted by date and datetime range sides.
const (
	dateFormat = "2006-01-02"
)

// Compile converts a raw UI filter value into a predicate, dispatching
// on the filter kind. It is total: malformed input never errors, it
// degrades to a nil predicate ("no filter on this field").
func Compile(fc dashboard.FilterConfig, raw any) Predicate {
	switch fc.Kind {
	case dashboard.FilterBoolean:
		return compileBoolean(fc.Attribute, raw)
	case dashboard.FilterSelect:
		return compileSelect(fc.Attribute, raw)
	case dashboard.FilterMultiSelect:
		return compileMultiSelect(fc.Attribute, raw)
	case dashboard.FilterRange:
		return compileRange(fc.Attribute, fc.RangeKind, raw)
	default:
		return nil
	}
}

// compileBoolean reads a set of flags from {"true","false"}. Exactly one
// flag filters on that value; zero or both means "don't filter". The
// canonical wire format is a list; a bare scalar is accepted as a
// compatibility alias.
func compileBoolean(field string, raw any) Predicate {
	flags := stringList(raw)
	var hasTrue, hasFalse bool
	for _, f := range flags {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "true":
			hasTrue = true
		case "false":
			hasFalse = true
		}
	}
	if hasTrue == hasFalse {
		return nil
	}
	return Compare{Field: field, Op: OpEQ, Value: hasTrue}
}

// compileSelect reads a single scalar; empty means "don't filter".
func compileSelect(field string, raw any) Predicate {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return Compare{Field: field, Op: OpEQ, Value: v}
	case []string, []any:
		// Lists belong to multiselect filters.
		return nil
	default:
		// Native enum or otherwise pre-typed value passes through.
		return Compare{Field: field, Op: OpEQ, Value: v}
	}
}

// compileMultiSelect reads a list of values into a membership predicate.
// Empty lists and non-list input mean "don't filter".
func compileMultiSelect(field string, raw any) Predicate {
	var values []any
	switch v := raw.(type) {
	case []string:
		for _, s := range v {
			values = append(values, s)
		}
	case []any:
		values = append(values, v...)
	default:
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return In{Field: field, Values: values}
}

// compileRange reads a map with "start"/"end" entries. Each side parses
// independently; an invalid or empty side is treated as absent rather
// than an error, so a well-formed start still filters when the end is
// malformed.
func compileRange(field string, kind dashboard.RangeKind, raw any) Predicate {
	startRaw, endRaw, ok := rangeSides(raw)
	if !ok {
		return nil
	}

	start, hasStart := parseRangeSide(kind, startRaw)
	end, hasEnd := parseRangeSide(kind, endRaw)

	switch {
	case hasStart && hasEnd:
		return And{Preds: []Predicate{
			Compare{Field: field, Op: OpGTE, Value: start},
			Compare{Field: field, Op: OpLTE, Value: end},
		}}
	case hasStart:
		return Compare{Field: field, Op: OpGTE, Value: start}
	case hasEnd:
		return Compare{Field: field, Op: OpLTE, Value: end}
	default:
		return nil
	}
}

func rangeSides(raw any) (start, end any, ok bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m["start"], m["end"], true
	case map[string]string:
		return m["start"], m["end"], true
	default:
		return nil, nil, false
	}
}

// parseRangeSide converts one side of a range to its typed value. A
// pre-typed value passes through unchanged; strings parse per the range
// kind; anything else is absent.
func parseRangeSide(kind dashboard.RangeKind, raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		return parseRangeString(kind, v)
	case int:
		return int64(v), kind == dashboard.RangeNumber
	case int64, float64:
		return v, kind == dashboard.RangeNumber
	case time.Time:
		return v, kind == dashboard.RangeDate || kind == dashboard.RangeDateTime
	default:
		return nil, false
	}
}

func parseRangeString(kind dashboard.RangeKind, s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	switch kind {
	case dashboard.RangeNumber:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	case dashboard.RangeDate:
		if t, err := time.Parse(dateFormat, s); err == nil {
			return t, true
		}
	case dashboard.RangeDateTime:
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		// Date-only input on a datetime range is common UI output.
		if t, err := time.Parse(dateFormat, s); err == nil {
			return t, true
		}
	}
	return nil, false
}

// stringList normalizes a raw flag value to a list of strings.
func stringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
