package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Client fetches spot prices from the Binance REST API, one pair per request.
// It does not retry, callers wrap FetchBySymbol with fetch_common.Retry.
type Client struct {
	cfg        *config.Config
	httpClient *fetch_common.HTTPClient
}

// NewClient creates a Binance client. limiter may be nil.
func NewClient(cfg *config.Config, limiter *fetch_common.RateLimiterManager) *Client {
	var limiterManager fetch_common.IRateLimiterManager
	if limiter != nil {
		limiter.SetLimitForURL(cfg.Binance.BaseURL, cfg.Binance.RateLimit)
		limiterManager = limiter
	}

	return &Client{
		cfg: cfg,
		httpClient: fetch_common.NewHTTPClient(
			fetch_common.NewClientOptions(cfg, "Binance"),
			fetch_common.NewHttpRequestMetricsWriter(ProviderName),
			limiterManager,
		),
	}
}

// FetchBySymbol returns {usd: price} per uppercase symbol. HTTP 451 aborts the
// whole call with the StatusError so the caller can move on to the next
// provider. Other per-symbol failures leave the symbol missing; when nothing
// succeeded the last of them is returned.
func (c *Client) FetchBySymbol(ctx context.Context, symbols []string) (*interfaces.ProviderResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "binance.fetch-by-symbol")
	span.SetAttributes(attribute.Int("binance.symbols", len(symbols)))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	result := interfaces.NewProviderResult(ProviderName)
	pairs := NewPairSet(symbols, c.cfg.Binance.QuoteAsset)

	var lastErr error
	for _, pair := range pairs.Pairs() {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		base, _ := pairs.Base(pair)
		price, fetchErr := c.fetchPair(ctx, pair)
		if fetchErr != nil {
			if fetch_common.IsGeoRestricted(fetchErr) {
				log.Printf("Binance: geo-restricted (451) while fetching %s, aborting", pair)
				err = fetchErr
				return result, err
			}
			log.Printf("Binance: failed to fetch %s: %v", pair, fetchErr)
			result.Errors = append(result.Errors, fmt.Sprintf("binance %s: %v", base, fetchErr))
			lastErr = fetchErr
			continue
		}

		result.Data[base] = interfaces.Quote{"usd": price}
	}

	for _, pair := range pairs.Pairs() {
		base, _ := pairs.Base(pair)
		if _, ok := result.Data[base]; !ok {
			result.Missing = append(result.Missing, base)
		}
	}

	if len(result.Data) == 0 && lastErr != nil {
		err = lastErr
		return result, err
	}
	return result, nil
}

func (c *Client) fetchPair(ctx context.Context, pair string) (float64, error) {
	req, err := fetch_common.NewRequestBuilder(c.cfg.Binance.BaseURL, TickerPricePath).
		With("symbol", pair).
		WithHeader(apiKeyHeader, c.cfg.Binance.APIKey).
		WithUserAgent(c.cfg.HTTP.UserAgent).
		Build(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Execute(req)
	if err != nil {
		return 0, err
	}

	var ticker TickerPrice
	if err := json.Unmarshal(resp.Body, &ticker); err != nil {
		return 0, fmt.Errorf("failed to decode ticker for %s: %w", pair, err)
	}
	if ticker.Symbol == "" {
		ticker.Symbol = pair
	}
	return ticker.Float()
}
