package rates

import (
	"net/http"
	"strings"
)

// latestHeaders are the upstream headers kept on the latest record
var latestHeaders = map[string]struct{}{
	"etag":                  {},
	"cache-control":         {},
	"date":                  {},
	"retry-after":           {},
	"x-ratelimit-limit":     {},
	"x-ratelimit-remaining": {},
	"x-ratelimit-reset":     {},
}

// WhitelistHeaders returns the allowed subset of h with lowercase names.
// Names are matched case-insensitively, multiple values are comma joined.
func WhitelistHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for name, values := range h {
		lower := strings.ToLower(name)
		if _, ok := latestHeaders[lower]; ok && len(values) > 0 {
			out[lower] = strings.Join(values, ", ")
		}
	}
	return out
}

// NormalizeHeaders returns every header of h with a lowercase name
func NormalizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) > 0 {
			out[strings.ToLower(name)] = strings.Join(values, ", ")
		}
	}
	return out
}
