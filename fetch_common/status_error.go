package fetch_common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Status codes with special meaning for the fallback cascade
const (
	StatusGeoRestricted = http.StatusUnavailableForLegalReasons
)

// DefaultRetryAfter is used when a 429 carries an unparseable Retry-After value
const DefaultRetryAfter = time.Second

// maxErrorBody bounds the response body kept inside StatusError
const maxErrorBody = 512

// StatusError is returned for every non-2xx upstream response
type StatusError struct {
	StatusCode    int
	URL           string
	Body          string
	RetryAfter    time.Duration
	HasRetryAfter bool
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// newStatusError builds a StatusError from a response, url is logged without query
func newStatusError(resp *http.Response, body []byte) *StatusError {
	se := &StatusError{
		StatusCode: resp.StatusCode,
		Body:       truncateBody(strings.TrimSpace(string(body))),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		u := *resp.Request.URL
		u.RawQuery = ""
		se.URL = u.String()
	}
	if raw := resp.Header.Get("Retry-After"); raw != "" {
		se.RetryAfter, se.HasRetryAfter = parseRetryAfter(raw), true
	}
	return se
}

func parseRetryAfter(raw string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

func truncateBody(body string) string {
	if len(body) <= maxErrorBody {
		return body
	}
	return body[:maxErrorBody] + "..."
}

// StatusCode extracts the upstream HTTP status from err, 0 when err is not a StatusError
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsStatus reports whether err carries one of the given HTTP statuses
func IsStatus(err error, codes ...int) bool {
	code := StatusCode(err)
	if code == 0 {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// IsGeoRestricted reports an HTTP 451 response
func IsGeoRestricted(err error) bool {
	return IsStatus(err, StatusGeoRestricted)
}
