package coinpaprika

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/status-im/market-rates/cache"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
)

// quoteCurrencies are requested on every ticker call
var quoteCurrencies = []string{"USD", "EUR"}

// Client talks to the public CoinPaprika API
type Client struct {
	cfg        *config.Config
	httpClient *fetch_common.HTTPClient
	cache      *cache.Service
	policy     fetch_common.RetryPolicy
}

// NewClient creates a CoinPaprika client. limiter may be nil.
func NewClient(cfg *config.Config, cacheService *cache.Service, limiter *fetch_common.RateLimiterManager) *Client {
	var limiterManager fetch_common.IRateLimiterManager
	if limiter != nil {
		limiter.SetLimitForURL(cfg.Coinpaprika.BaseURL, cfg.Coinpaprika.RateLimit)
		limiterManager = limiter
	}

	return &Client{
		cfg:   cfg,
		cache: cacheService,
		httpClient: fetch_common.NewHTTPClient(
			fetch_common.NewClientOptions(cfg, "CoinPaprika"),
			fetch_common.NewHttpRequestMetricsWriter(ProviderName),
			limiterManager,
		),
		policy: fetch_common.NewRetryPolicy(cfg, cfg.HTTP.RetryCount, "CoinPaprika"),
	}
}

func (c *Client) newRequest(path string) *fetch_common.RequestBuilder {
	return fetch_common.NewRequestBuilder(c.cfg.Coinpaprika.BaseURL, path).
		WithUserAgent(c.cfg.HTTP.UserAgent)
}

func (c *Client) get(ctx context.Context, policy fetch_common.RetryPolicy, rb *fetch_common.RequestBuilder) (*fetch_common.Response, error) {
	return c.httpClient.ExecuteWithRetries(ctx, policy, func(ctx context.Context) (*http.Request, error) {
		return rb.Build(ctx)
	})
}

// search returns the coin candidates for symbol in API order
func (c *Client) search(ctx context.Context, symbol string) ([]Coin, error) {
	rb := c.newRequest(SearchPath).
		With("query", symbol).
		With("limit", fmt.Sprintf("%d", c.cfg.Coinpaprika.SearchLimit)).
		With("type", "coins")

	resp, err := c.get(ctx, c.policy.WithRetries(0), rb)
	if err != nil {
		return nil, err
	}

	var decoded SearchResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response for %s: %w", symbol, err)
	}
	return decoded.Coins, nil
}

// fetchTicker returns the positive USD/EUR prices of coin id
func (c *Client) fetchTicker(ctx context.Context, policy fetch_common.RetryPolicy, id string) (interfaces.Quote, error) {
	rb := c.newRequest(TickersPath+"/"+id).
		WithList("quotes", quoteCurrencies)

	resp, err := c.get(ctx, policy, rb)
	if err != nil {
		return nil, err
	}

	var ticker Ticker
	if err := json.Unmarshal(resp.Body, &ticker); err != nil {
		return nil, fmt.Errorf("failed to decode ticker %s: %w", id, err)
	}

	quote := make(interfaces.Quote, len(quoteCurrencies))
	for _, currency := range quoteCurrencies {
		if q, ok := ticker.Quotes[currency]; ok && q.Price > 0 {
			quote[strings.ToLower(currency)] = q.Price
		}
	}
	if len(quote) == 0 {
		return nil, fmt.Errorf("ticker %s has no usable price", id)
	}
	return quote, nil
}

// retryOnRateLimit allows a single retry and only after a 429
func (c *Client) retryOnRateLimit() fetch_common.RetryPolicy {
	return c.policy.WithRetries(1)
}

// onlyRateLimited marks every error except 429 as final
func onlyRateLimited(err error) error {
	if err == nil || fetch_common.IsStatus(err, http.StatusTooManyRequests) {
		return err
	}
	return fetch_common.Permanent(err)
}
