package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_rates_"

// Service constants
const (
	ServiceRates     = "rates"
	ServiceStaleness = "staleness"
	ServiceCleanup   = "cleanup"
)

var (
	// Upstream request counter
	// Cardinality: ~20 (4 providers × 5 statuses)
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "provider_requests_total",
			Help: "Total number of HTTP requests to upstream providers",
		},
		[]string{"provider", "status"},
	)

	// Retry attempts counter
	// Cardinality: ~4 (number of providers)
	ProviderRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "provider_retry_attempts_total",
			Help: "Total number of retry attempts per provider",
		},
		[]string{"provider"},
	)

	// Run duration per service
	// Cardinality: ~3 (number of services)
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "run_duration_seconds",
			Help: "Time taken to complete a full run",
		},
		[]string{"service"},
	)

	// Run outcome counter
	// Cardinality: ~9 (3 services × ok/warn/error)
	RunStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "run_status_total",
			Help: "Number of runs by final status",
		},
		[]string{"service", "status"},
	)

	// Provenance label of each update
	// Cardinality: ~8 (possible tier combinations)
	ProvenanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "provenance_total",
			Help: "Number of updates by provenance label",
		},
		[]string{"provenance"},
	)

	// Fallback tier invocations
	// Cardinality: ~6 (2 tiers × recovered/empty/error)
	FallbackTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fallback_tier_total",
			Help: "Number of fallback tier invocations by outcome",
		},
		[]string{"tier", "outcome"},
	)

	// Assets in the latest rates table
	AssetsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "assets",
			Help: "Number of assets in the latest rates table",
		},
	)

	// Cache lookups by cache key family
	// Cardinality: ~6 (3 caches × hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Number of cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	// Alerts by delivery result
	// Cardinality: ~4 (sent, disabled, missing-creds, failed)
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "alerts_total",
			Help: "Number of alert attempts by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records an upstream request with its status
func RecordHTTPRequest(provider, status string) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
}

// RecordHTTPRetry records an upstream retry
func RecordHTTPRetry(provider string) {
	ProviderRetryCounter.WithLabelValues(provider).Inc()
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordAlert records an alert attempt, an empty reason means delivered
func RecordAlert(reason string) {
	if reason == "" {
		reason = "sent"
	}
	AlertsTotal.WithLabelValues(reason).Inc()
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordRun records the duration and final status of a run
func (mw *MetricsWriter) RecordRun(duration time.Duration, status string) {
	RunDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	RunStatusTotal.WithLabelValues(mw.serviceName, status).Inc()
	log.Printf("Metrics: %s run took %.2fs with status %s", mw.serviceName, duration.Seconds(), status)
}

// RecordProvenance records the provenance label and table size of an update
func (mw *MetricsWriter) RecordProvenance(provenance string, assets int) {
	ProvenanceTotal.WithLabelValues(provenance).Inc()
	AssetsGauge.Set(float64(assets))
}

// RecordFallbackTier records the outcome of one fallback tier call
func (mw *MetricsWriter) RecordFallbackTier(tier, outcome string) {
	FallbackTierTotal.WithLabelValues(tier, outcome).Inc()
}
