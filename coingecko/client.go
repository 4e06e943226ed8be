package coingecko

import (
	"context"
	"net/http"
	"strings"

	"github.com/status-im/market-rates/cache"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
)

// Client talks to the CoinGecko REST API
type Client struct {
	cfg        *config.Config
	httpClient *fetch_common.HTTPClient
	cache      *cache.Service
	policy     fetch_common.RetryPolicy
}

// NewClient creates a CoinGecko client. limiter may be nil.
func NewClient(cfg *config.Config, cacheService *cache.Service, limiter *fetch_common.RateLimiterManager) *Client {
	c := &Client{
		cfg:   cfg,
		cache: cacheService,
	}

	var limiterManager fetch_common.IRateLimiterManager
	if limiter != nil {
		limiter.SetLimitForURL(c.baseURL(), cfg.Coingecko.RateLimit)
		limiterManager = limiter
	}

	c.httpClient = fetch_common.NewHTTPClient(
		fetch_common.NewClientOptions(cfg, "CoinGecko"),
		fetch_common.NewHttpRequestMetricsWriter(ProviderName),
		limiterManager,
	)
	c.policy = fetch_common.NewRetryPolicy(cfg, cfg.Coingecko.Retries, "CoinGecko")
	return c
}

// baseURL selects the pro host only for pro keys on the default public host
func (c *Client) baseURL() string {
	cg := c.cfg.Coingecko
	if cg.APIKey != "" && !strings.EqualFold(cg.KeyType, keyTypeDemo) && cg.ProBaseURL != "" {
		return cg.ProBaseURL
	}
	return cg.BaseURL
}

func (c *Client) newRequest(path string) *fetch_common.RequestBuilder {
	rb := fetch_common.NewRequestBuilder(c.baseURL(), path).
		WithUserAgent(c.cfg.HTTP.UserAgent)

	if key := c.cfg.Coingecko.APIKey; key != "" {
		if strings.EqualFold(c.cfg.Coingecko.KeyType, keyTypeDemo) {
			rb.WithHeader("x-cg-demo-api-key", key)
		} else {
			rb.WithHeader("x-cg-pro-api-key", key)
		}
	}
	return rb
}

func (c *Client) get(ctx context.Context, policy fetch_common.RetryPolicy, rb *fetch_common.RequestBuilder) (*fetch_common.Response, error) {
	return c.httpClient.ExecuteWithRetries(ctx, policy, func(ctx context.Context) (*http.Request, error) {
		return rb.Build(ctx)
	})
}
