package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/status-im/market-rates/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRatesSource struct {
	latest      *interfaces.LatestPayload
	fiat        *interfaces.FiatPayload
	err         error
	initialized bool
	forced      int
	lastRunAt   time.Time
	lastErr     error
}

func (f *fakeRatesSource) GetLatest(ctx context.Context) (*interfaces.LatestPayload, error) {
	return f.latest, f.err
}

func (f *fakeRatesSource) GetLatestFiat(ctx context.Context) (*interfaces.FiatPayload, error) {
	return f.fiat, f.err
}

func (f *fakeRatesSource) IsInitialized() bool { return f.initialized }

func (f *fakeRatesSource) ForceUpdate() { f.forced++ }

func (f *fakeRatesSource) Status() (time.Time, error) { return f.lastRunAt, f.lastErr }

func serve(t *testing.T, source *fakeRatesSource, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	New("0", source).Router().ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func testLatest() *interfaces.LatestPayload {
	return &interfaces.LatestPayload{
		Provider: "primary+tertiary",
		Rates: interfaces.RatesTable{
			"USD": {"BTC": 50000, "ETH": 2000},
			"EUR": {"BTC": 46000, "ETH": 1850},
		},
		Meta: interfaces.PayloadMeta{FiatBase: "EUR", Providers: []string{"coingecko", "coinpaprika"}},
	}
}

func TestLatestRates(t *testing.T) {
	rec := serve(t, &fakeRatesSource{latest: testLatest()}, http.MethodGet, "/api/v1/rates/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var got interfaces.LatestPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "primary+tertiary", got.Provider)
	assert.Equal(t, 1850.0, got.Rates["EUR"]["ETH"])
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestLatestRates_Filtered(t *testing.T) {
	rec := serve(t, &fakeRatesSource{latest: testLatest()}, http.MethodGet, "/api/v1/rates/latest?fiats=usd&symbols=btc")
	require.Equal(t, http.StatusOK, rec.Code)

	var got interfaces.LatestPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, interfaces.RatesTable{"USD": {"BTC": 50000}}, got.Rates)
}

func TestLatestRates_Unavailable(t *testing.T) {
	rec := serve(t, &fakeRatesSource{}, http.MethodGet, "/api/v1/rates/latest")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, &fakeRatesSource{err: errors.New("redis down")}, http.MethodGet, "/api/v1/rates/latest")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLatestFiat(t *testing.T) {
	source := &fakeRatesSource{fiat: &interfaces.FiatPayload{Provider: "ecb", Base: "EUR", Rates: map[string]float64{"EUR": 1, "USD": 1.08}}}
	rec := serve(t, source, http.MethodGet, "/api/v1/fiat/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"provider":"ecb","timestamp":"0001-01-01T00:00:00Z","base":"EUR","rates":{"EUR":1,"USD":1.08}}`, rec.Body.String())

	rec = serve(t, &fakeRatesSource{}, http.MethodGet, "/api/v1/fiat/latest")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRefresh(t *testing.T) {
	source := &fakeRatesSource{}
	rec := serve(t, source, http.MethodPost, "/api/v1/rates/refresh")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, source.forced)

	rec = serve(t, source, http.MethodGet, "/api/v1/rates/refresh")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	source := &fakeRatesSource{
		initialized: true,
		lastRunAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		lastErr:     errors.New("fiat feeds failed"),
	}
	rec := serve(t, source, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, map[string]any{"rates": "up"}, got["services"])
	assert.Equal(t, "2026-03-14T12:00:00Z", got["lastRunAt"])
	assert.Equal(t, "fiat feeds failed", got["lastError"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, &fakeRatesSource{}, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFilterRates(t *testing.T) {
	table := testLatest().Rates
	assert.Equal(t, table, filterRates(table, nil, nil))
	assert.Equal(t, interfaces.RatesTable{"USD": {"ETH": 2000}, "EUR": {"ETH": 1850}}, filterRates(table, nil, []string{"eth"}))
	assert.Equal(t, interfaces.RatesTable{}, filterRates(table, []string{"gbp"}, nil))
}
