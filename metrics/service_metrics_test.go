package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test-provider", "success"))
	RecordHTTPRequest("test-provider", "success")
	RecordHTTPRetry("test-provider")

	assert.Equal(t, before+1, testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test-provider", "success")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(ProviderRetryCounter.WithLabelValues("test-provider")), 1.0)
}

func TestMetricsWriter(t *testing.T) {
	mw := NewMetricsWriter("test-service")
	assert.Equal(t, "test-service", mw.GetServiceName())

	mw.RecordRun(1500*time.Millisecond, "ok")
	mw.RecordProvenance("primary+tertiary", 7)
	mw.RecordFallbackTier("secondary", "error")

	assert.Equal(t, 1.0, testutil.ToFloat64(RunStatusTotal.WithLabelValues("test-service", "ok")))
	assert.Equal(t, 7.0, testutil.ToFloat64(AssetsGauge))
	assert.GreaterOrEqual(t, testutil.ToFloat64(ProvenanceTotal.WithLabelValues("primary+tertiary")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(FallbackTierTotal.WithLabelValues("secondary", "error")), 1.0)
}

func TestRecordCacheLookupAndAlert(t *testing.T) {
	RecordCacheLookup("test-cache", true)
	RecordCacheLookup("test-cache", false)
	RecordAlert("")
	RecordAlert("disabled")

	assert.Equal(t, 1.0, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-cache", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-cache", "miss")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(AlertsTotal.WithLabelValues("sent")), 1.0)
}
