package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var stripTagsPolicy = bluemonday.StripTagsPolicy()

// SanitizeString removes every HTML tag from s and returns plain text. The
// policy escapes the text it keeps, so entities are decoded again.
func SanitizeString(s string) string {
	return html.UnescapeString(stripTagsPolicy.Sanitize(s))
}

// SanitizeValue strips HTML tags from every string inside v, descending
// into slices and maps. Other values are returned unchanged.
func SanitizeValue(v any) any {
	switch value := v.(type) {
	case string:
		return SanitizeString(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = SanitizeValue(item)
		}
		return out
	case []string:
		out := make([]string, len(value))
		for i, item := range value {
			out[i] = SanitizeString(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = SanitizeValue(item)
		}
		return out
	default:
		return v
	}
}
