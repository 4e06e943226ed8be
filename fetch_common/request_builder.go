package fetch_common

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	trimmedPath := strings.TrimLeft(path, "/")
	if trimmedPath == "" {
		return baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for upstream GET requests
type RequestBuilder struct {
	baseURL    string
	httpMethod string
	apiPath    string
	params     map[string]string
	userAgent  string
	headers    map[string]string
}

// NewRequestBuilder creates a request builder for baseURL + apiPath
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:    baseURL,
		apiPath:    apiPath,
		httpMethod: http.MethodGet,
		params:     make(map[string]string),
		headers:    make(map[string]string),
		userAgent:  "market-rates/1.0",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a query parameter, empty values are skipped
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	if value != "" {
		rb.params[key] = value
	}
	return rb
}

// WithList adds a comma joined query parameter
func (rb *RequestBuilder) WithList(key string, values []string) *RequestBuilder {
	if len(values) > 0 {
		rb.params[key] = strings.Join(values, ",")
	}
	return rb
}

// WithHeader adds a custom HTTP header, empty values are skipped
func (rb *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	if value != "" {
		rb.headers[name] = value
	}
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *RequestBuilder) WithUserAgent(userAgent string) *RequestBuilder {
	if userAgent != "" {
		rb.userAgent = userAgent
	}
	return rb
}

// BuildURL returns the full request URL with sorted query parameters
func (rb *RequestBuilder) BuildURL() (string, error) {
	fullURL := buildURL(rb.baseURL, rb.apiPath)
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", fullURL, err)
	}

	query := u.Query()
	keys := make([]string, 0, len(rb.params))
	for k := range rb.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		query.Set(k, rb.params[k])
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Build creates the http.Request bound to ctx
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	fullURL, err := rb.BuildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, rb.httpMethod, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range rb.headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", rb.userAgent)

	return req, nil
}
