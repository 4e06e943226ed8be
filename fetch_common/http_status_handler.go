package fetch_common

import (
	"github.com/status-im/market-rates/metrics"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// HttpRequestMetricsWriter implements IHttpStatusHandler by writing to metrics
type HttpRequestMetricsWriter struct {
	provider string
}

// NewHttpRequestMetricsWriter creates a new metrics writer for the given provider
func NewHttpRequestMetricsWriter(provider string) *HttpRequestMetricsWriter {
	return &HttpRequestMetricsWriter{
		provider: provider,
	}
}

// OnRequest records an HTTP request with its status
func (h *HttpRequestMetricsWriter) OnRequest(status string) {
	metrics.RecordHTTPRequest(h.provider, status)
}

// OnRetry records an HTTP retry attempt
func (h *HttpRequestMetricsWriter) OnRetry() {
	metrics.RecordHTTPRetry(h.provider)
}
