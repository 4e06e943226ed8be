package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	mock_interfaces "github.com/status-im/market-rates/interfaces/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	cfg       *config.Config
	universe  *mock_interfaces.MockICoinUniverse
	primary   *mock_interfaces.MockIPrimaryProvider
	secondary *mock_interfaces.MockISecondaryProvider
	tertiary  *mock_interfaces.MockITertiaryProvider
	fiat      *mock_interfaces.MockIFiatProvider
	store     *mock_interfaces.MockIRatesStore
	alerts    *mock_interfaces.MockIAlertSender
	service   *Service

	mu           sync.Mutex
	latest       *interfaces.LatestPayload
	snapshot     *interfaces.SnapshotPayload
	snapshotDate time.Time
	latestFiat   *interfaces.FiatPayload
	fiatSnapshot *interfaces.FiatPayload
	monitoring   []interfaces.MonitoringEntry
	sentAlerts   []string
}

func newTestEnv(t *testing.T, env map[string]string) *testEnv {
	t.Setenv("APP_ENV", config.EnvTest)
	t.Setenv("CACHE_DIR", t.TempDir())
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	e := &testEnv{
		cfg:       cfg,
		universe:  mock_interfaces.NewMockICoinUniverse(ctrl),
		primary:   mock_interfaces.NewMockIPrimaryProvider(ctrl),
		secondary: mock_interfaces.NewMockISecondaryProvider(ctrl),
		tertiary:  mock_interfaces.NewMockITertiaryProvider(ctrl),
		fiat:      mock_interfaces.NewMockIFiatProvider(ctrl),
		store:     mock_interfaces.NewMockIRatesStore(ctrl),
		alerts:    mock_interfaces.NewMockIAlertSender(ctrl),
	}
	e.expectStore()

	e.service = NewService(cfg, Providers{
		Universe:  e.universe,
		Primary:   e.primary,
		Secondary: e.secondary,
		Tertiary:  e.tertiary,
		Fiat:      e.fiat,
	}, e.store, e.alerts)
	e.service.now = func() time.Time { return testNow }
	e.service.newRunID = func() string { return "run-1" }
	return e
}

func (e *testEnv) expectStore() {
	e.store.EXPECT().InitStore(gomock.Any()).Return(nil).AnyTimes()
	e.store.EXPECT().WriteLatest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *interfaces.LatestPayload) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.latest = p
			return nil
		}).AnyTimes()
	e.store.EXPECT().WriteSnapshot(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *interfaces.SnapshotPayload, date time.Time) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.snapshot = p
			e.snapshotDate = date
			return nil
		}).AnyTimes()
	e.store.EXPECT().WriteLatestFiat(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *interfaces.FiatPayload) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.latestFiat = p
			return nil
		}).AnyTimes()
	e.store.EXPECT().WriteFiatSnapshot(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *interfaces.FiatPayload, _ time.Time) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.fiatSnapshot = p
			return nil
		}).AnyTimes()
	e.store.EXPECT().WriteMonitoringLog(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry interfaces.MonitoringEntry) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.monitoring = append(e.monitoring, entry)
			return nil
		}).AnyTimes()
	e.alerts.EXPECT().SendAlert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, text string) interfaces.AlertResult {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.sentAlerts = append(e.sentAlerts, text)
			return interfaces.AlertResult{OK: true}
		}).AnyTimes()
}

func (e *testEnv) expectIDs(raw string, topN int, ids []string, supported ...string) {
	e.universe.EXPECT().ResolveConfiguredIDs(gomock.Any(), raw, topN).Return(ids, nil)
	set := make(map[string]struct{}, len(supported))
	for _, id := range supported {
		set[id] = struct{}{}
	}
	e.universe.EXPECT().FetchSupportedIDs(gomock.Any()).Return(set, nil)
}

func (e *testEnv) expectFiat() {
	e.fiat.EXPECT().FetchFiatTable(gomock.Any()).Return(testFiatTable(), nil)
}

func testFiatTable() *interfaces.FiatTable {
	return &interfaces.FiatTable{
		Source: "ecb",
		Base:   "EUR",
		Date:   "2026-03-13",
		Rates:  map[string]float64{"EUR": 1, "USD": 1.08, "GBP": 0.85},
	}
}

func providerResult(provider string, data map[string]interfaces.Quote, missing ...string) *interfaces.ProviderResult {
	res := interfaces.NewProviderResult(provider)
	for k, v := range data {
		res.Data[k] = v
	}
	res.Missing = append(res.Missing, missing...)
	return res
}

func geoRestricted() error {
	return &fetch_common.StatusError{StatusCode: fetch_common.StatusGeoRestricted, URL: "https://api.binance.com/api/v3/ticker/price"}
}

func TestUpdate_PrimarySuccess(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum", "FIAT_CURRENCIES": "usd,eur,gbp"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	primary := providerResult("coingecko", map[string]interfaces.Quote{
		"bitcoin":  {"usd": 50000, "eur": 46000},
		"ethereum": {"usd": 2000},
	})
	primary.Headers.Set("ETag", `W/"abc"`)
	primary.Headers.Set("Server", "cloudflare")
	primary.RawResponse = `{"bitcoin":{"usd":50000}}`
	e.primary.EXPECT().FetchPrices(gomock.Any(), []string{"bitcoin", "ethereum"}, []string{"usd", "eur"}).Return(primary, nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, TierPrimary, result.Provenance)
	assert.Equal(t, []string{"coingecko"}, result.Providers)
	assert.Empty(t, result.MissingSymbols)

	assert.Equal(t, 50000.0, result.Rates["USD"]["BTC"])
	assert.Equal(t, 46000.0, result.Rates["EUR"]["BTC"])
	assert.InDelta(t, 2000/1.08, result.Rates["EUR"]["ETH"], 1e-9)
	assert.InDelta(t, 50000*0.85/1.08, result.Rates["GBP"]["BTC"], 1e-9)

	require.NotNil(t, e.latest)
	assert.Equal(t, TierPrimary, e.latest.Provider)
	assert.Equal(t, testNow, e.latest.Timestamp)
	assert.Equal(t, "EUR", e.latest.Meta.FiatBase)
	assert.Equal(t, map[string]string{"etag": `W/"abc"`}, e.latest.Meta.Headers)

	require.NotNil(t, e.snapshot)
	assert.Equal(t, "cloudflare", e.snapshot.Meta.Headers["server"])
	assert.Equal(t, primary.RawResponse, e.snapshot.Meta.RawResponse)
	assert.Equal(t, testNow, e.snapshotDate)

	require.NotNil(t, e.latestFiat)
	assert.Equal(t, "ecb", e.latestFiat.Provider)
	assert.Same(t, e.latestFiat, e.fiatSnapshot)

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusOK, e.monitoring[0].Status)
	assert.Equal(t, OperationFetchAndStore, e.monitoring[0].Operation)
	assert.Equal(t, TierPrimary, e.monitoring[0].Provider)
	assert.Empty(t, e.sentAlerts)
}

func TestUpdate_GeoRestrictedSecondaryFallsThroughToTertiary(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000, "eur": 46000}}, "ethereum"), nil)
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"ETH"}).Return(nil, geoRestricted()).Times(1)
	e.tertiary.EXPECT().FetchBySymbolSearch(gomock.Any(), []string{"ETH"}).Return(
		providerResult("coinpaprika", map[string]interfaces.Quote{"ETH": {"usd": 2000, "eur": 1850}}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "primary+tertiary", result.Provenance)
	assert.Equal(t, []string{"coingecko", "coinpaprika"}, result.Providers)
	assert.Equal(t, 2000.0, result.Rates["USD"]["ETH"])
	assert.Equal(t, 1850.0, result.Rates["EUR"]["ETH"])
	assert.Empty(t, result.MissingSymbols)
	assert.Empty(t, e.sentAlerts)
	assert.Contains(t, result.Diagnostics.RecentErrors[0], "binance")

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusOK, e.monitoring[0].Status)
}

func TestUpdate_PrimaryFailureUsesSecondaryForAllSymbols(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC", "ETH"}).Return(
		providerResult("binance", map[string]interfaces.Quote{"BTC": {"usd": 50000}, "ETH": {"usd": 2000}}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TierSecondary, result.Provenance)
	assert.InDelta(t, 50000/1.08, result.Rates["EUR"]["BTC"], 1e-9)
	require.NotNil(t, e.snapshot)
	assert.Contains(t, e.snapshot.Meta.RawResponse, `"BTC"`)
}

func TestUpdate_SecondaryIsRetried(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin", "BINANCE_RETRIES": "2"})
	e.expectIDs("bitcoin", 0, []string{"bitcoin"}, "bitcoin")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	gomock.InOrder(
		e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC"}).Return(nil, &fetch_common.StatusError{StatusCode: 503}),
		e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC"}).Return(
			providerResult("binance", map[string]interfaces.Quote{"BTC": {"usd": 50000}}), nil),
	)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TierSecondary, result.Provenance)
}

func TestUpdate_NoSupportedIDsSkipsPrimary(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "tether")

	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC", "ETH"}).Return(
		providerResult("binance", map[string]interfaces.Quote{"BTC": {"usd": 50000}, "ETH": {"usd": 2000}}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TierSecondary, result.Provenance)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, result.Diagnostics.DroppedIDs)
	assert.Equal(t, 1, result.Diagnostics.SupportedCount)
}

func TestUpdate_SymbolOverrideForFullFallback(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "wrapped-bitcoin", "CRYPTO_SYMBOLS": "wbtc, btc"})
	e.expectIDs("wrapped-bitcoin", 0, []string{"wrapped-bitcoin"}, "wrapped-bitcoin")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"WBTC", "BTC"}).Return(
		providerResult("binance", map[string]interfaces.Quote{"WBTC": {"usd": 49900}, "BTC": {"usd": 50000}}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 49900.0, result.Rates["USD"]["WBTC"])
}

func TestUpdate_TopDirective(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "top:3"})
	ids := []string{"bitcoin", "ethereum", "tether"}
	e.expectIDs("top:3", 0, ids, ids...)

	e.primary.EXPECT().FetchPrices(gomock.Any(), ids, []string{"usd", "eur"}).Return(
		providerResult("coingecko", map[string]interfaces.Quote{
			"bitcoin":  {"usd": 50000},
			"ethereum": {"usd": 2000},
			"tether":   {"usd": 1},
		}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Rates["USD"], 3)
	assert.Equal(t, 1.0, result.Rates["USD"]["TETHER"])
}

func TestUpdate_UseTopNOverridesLiteralIDs(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin", "CRYPTO_USE_TOP_N": "2"})
	e.expectIDs("", 2, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	e.primary.EXPECT().FetchPrices(gomock.Any(), []string{"bitcoin", "ethereum"}, gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000}, "ethereum": {"usd": 2000}}), nil)
	e.expectFiat()

	_, err := e.service.Update(context.Background())
	require.NoError(t, err)
}

func TestUpdate_UnsupportedIDsNeverReachOutput(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,fakecoin"})
	e.expectIDs("bitcoin,fakecoin", 0, []string{"bitcoin", "fakecoin"}, "bitcoin")

	e.primary.EXPECT().FetchPrices(gomock.Any(), []string{"bitcoin"}, gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000, "eur": 46000}}), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	for fiat, assets := range result.Rates {
		assert.NotContains(t, assets, "FAKECOIN", fiat)
	}
	assert.Equal(t, []string{"fakecoin"}, result.Diagnostics.DroppedIDs)
}

func TestUpdate_InvalidIDsAlert(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,notacoin,ethereum"})
	ids := []string{"bitcoin", "notacoin", "ethereum"}
	e.expectIDs("bitcoin,notacoin,ethereum", 0, ids, ids...)

	primary := providerResult("coingecko", map[string]interfaces.Quote{
		"bitcoin":  {"usd": 50000},
		"ethereum": {"usd": 2000},
	}, "notacoin")
	primary.InvalidIDs = []string{"notacoin"}
	primary.RecoveredIDs = []string{"bitcoin", "ethereum"}
	e.primary.EXPECT().FetchPrices(gomock.Any(), ids, gomock.Any()).Return(primary, nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TierPrimary, result.Provenance)
	assert.Empty(t, result.MissingSymbols)
	require.Len(t, e.sentAlerts, 1)
	assert.Contains(t, e.sentAlerts[0], "CoinGecko rejected 1 invalid ids: notacoin")
	assert.Contains(t, e.sentAlerts[0], "Recovered 2 ids")

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, []string{"notacoin"}, e.monitoring[0].Meta["invalidIds"])
}

func TestUpdate_UnrecoveredSymbolsAlert(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000}}, "ethereum"), nil)
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"ETH"}).Return(providerResult("binance", nil, "ETH"), nil)
	e.tertiary.EXPECT().FetchBySymbolSearch(gomock.Any(), []string{"ETH"}).Return(providerResult("coinpaprika", nil, "ETH"), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TierPrimary, result.Provenance)
	assert.Equal(t, []string{"ETH"}, result.MissingSymbols)
	require.Len(t, e.sentAlerts, 1)
	assert.Contains(t, e.sentAlerts[0], "could not recover 1 symbols: ETH")

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusWarn, e.monitoring[0].Status)
	assert.Equal(t, []string{"ETH"}, e.monitoring[0].Meta["missingSymbols"])
}

func TestUpdate_NoDataPersistsAndAlerts(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin,ethereum"})
	e.expectIDs("bitcoin,ethereum", 0, []string{"bitcoin", "ethereum"}, "bitcoin", "ethereum")

	primary := providerResult("coingecko", nil, "bitcoin", "ethereum")
	primary.Errors = []string{"batch bitcoin,ethereum: status 429"}
	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(primary, nil)
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC", "ETH"}).Return(nil, geoRestricted())
	e.tertiary.EXPECT().FetchBySymbolSearch(gomock.Any(), []string{"BTC", "ETH"}).Return(providerResult("coinpaprika", nil, "BTC", "ETH"), nil)
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ProvenanceNone, result.Provenance)
	assert.Empty(t, result.Rates)
	assert.Equal(t, []string{}, result.Providers)

	require.Len(t, e.sentAlerts, 1)
	assert.Contains(t, e.sentAlerts[0], NoDataAlertPrefix)
	assert.Contains(t, e.sentAlerts[0], "supportedCount=2")
	assert.Contains(t, e.sentAlerts[0], "status 429")
	assert.Contains(t, e.sentAlerts[0], "binance:")

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusWarn, e.monitoring[0].Status)
	diag, ok := e.monitoring[0].Meta["diagnostics"].(*Diagnostics)
	require.True(t, ok)
	assert.Len(t, diag.RecentErrors, 2)

	require.NotNil(t, e.latest)
	assert.Equal(t, ProvenanceNone, e.latest.Provider)
	require.NotNil(t, e.latestFiat)
}

func TestUpdate_EveryFallbackFailedIsAnError(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin"})
	e.expectIDs("bitcoin", 0, []string{"bitcoin"}, "bitcoin")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("primary down"))
	e.secondary.EXPECT().FetchBySymbol(gomock.Any(), []string{"BTC"}).Return(nil, geoRestricted()).Times(1)
	e.tertiary.EXPECT().FetchBySymbolSearch(gomock.Any(), []string{"BTC"}).Return(nil, errors.New("search failed"))
	e.expectFiat()

	result, err := e.service.Update(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFallbackData)
	assert.Nil(t, result)

	assert.NotNil(t, e.latestFiat, "fiat is persisted before the crypto error")
	assert.NotNil(t, e.fiatSnapshot)
	assert.Nil(t, e.latest)
	assert.Nil(t, e.snapshot)

	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusError, e.monitoring[0].Status)
	assert.Contains(t, e.monitoring[0].Meta["error"], "every fallback provider failed")
}

func TestUpdate_FiatFailure(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "bitcoin"})
	e.expectIDs("bitcoin", 0, []string{"bitcoin"}, "bitcoin")

	e.primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000}}), nil)
	e.fiat.EXPECT().FetchFiatTable(gomock.Any()).Return(nil, errors.New("fiat feeds failed"))

	_, err := e.service.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch fiat rates")

	assert.Nil(t, e.latest)
	assert.Nil(t, e.latestFiat)
	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusError, e.monitoring[0].Status)
}

func TestUpdate_ResolveFailure(t *testing.T) {
	e := newTestEnv(t, map[string]string{"CRYPTO_IDS": "top:5"})
	e.universe.EXPECT().ResolveConfiguredIDs(gomock.Any(), "top:5", 0).Return(nil, errors.New("markets unavailable"))

	_, err := e.service.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve configured ids")
	require.Len(t, e.monitoring, 1)
	assert.Equal(t, interfaces.StatusError, e.monitoring[0].Status)
}

func TestUpdate_PersistFailure(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvTest)
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	universe := mock_interfaces.NewMockICoinUniverse(ctrl)
	primary := mock_interfaces.NewMockIPrimaryProvider(ctrl)
	fiatProvider := mock_interfaces.NewMockIFiatProvider(ctrl)
	store := mock_interfaces.NewMockIRatesStore(ctrl)
	alerts := mock_interfaces.NewMockIAlertSender(ctrl)

	universe.EXPECT().ResolveConfiguredIDs(gomock.Any(), "bitcoin,ethereum", 0).Return([]string{"bitcoin"}, nil)
	universe.EXPECT().FetchSupportedIDs(gomock.Any()).Return(map[string]struct{}{"bitcoin": {}}, nil)
	primary.EXPECT().FetchPrices(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		providerResult("coingecko", map[string]interfaces.Quote{"bitcoin": {"usd": 50000}}), nil)
	fiatProvider.EXPECT().FetchFiatTable(gomock.Any()).Return(testFiatTable(), nil)

	store.EXPECT().InitStore(gomock.Any()).Return(nil)
	store.EXPECT().WriteLatestFiat(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().WriteFiatSnapshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().WriteMonitoringLog(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().WriteLatest(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	service := NewService(cfg, Providers{
		Universe:  universe,
		Primary:   primary,
		Secondary: mock_interfaces.NewMockISecondaryProvider(ctrl),
		Tertiary:  mock_interfaces.NewMockITertiaryProvider(ctrl),
		Fiat:      fiatProvider,
	}, store, alerts)
	result, err := service.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write latest rates")
	require.NotNil(t, result)
	assert.Equal(t, TierPrimary, result.Provenance)
}
