package dashboard

import "strings"

// Known abbreviations kept upper-case in generated labels.
var knownAbbreviations = map[string]string{
	"id":   "ID",
	"ids":  "IDs",
	"uuid": "UUID",
	"url":  "URL",
	"api":  "API",
	"html": "HTML",
	"sku":  "SKU",
	"isbn": "ISBN",
}

// Humanize converts a snake_case identifier to a display label:
// word-splitting on underscores and capitalizing each word.
func Humanize(value string) string {
	if value == "" {
		return ""
	}
	parts := strings.Split(value, "_")
	out := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if abbr, ok := knownAbbreviations[strings.ToLower(p)]; ok {
			out = append(out, abbr)
			continue
		}
		out = append(out, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(out, " ")
}
