package response

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// PrefersJSON reports whether r's Accept header ranks application/json above
// text/html. An explicit application/json beats a wildcard of equal weight;
// a missing header favors HTML.
func PrefersJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}

	jsonQ, htmlQ, wildcardQ := -1.0, -1.0, -1.0
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		switch mediaType {
		case "application/json":
			jsonQ = max(jsonQ, q)
		case "text/html":
			htmlQ = max(htmlQ, q)
		case "*/*", "text/*":
			wildcardQ = max(wildcardQ, q)
		}
	}

	if jsonQ <= 0 {
		return false
	}
	if htmlQ >= 0 {
		return jsonQ > htmlQ
	}
	return jsonQ >= wildcardQ
}
