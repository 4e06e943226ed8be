package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/status-im/market-rates/cache"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	coinsListCacheKey = "coingecko-coins-list"
	// defaultTopN applies to "top:" directives without a usable number
	defaultTopN = 100
	// list and markets endpoints get one retry
	listRetries = 1
)

var topDirective = regexp.MustCompile(`(?i)^\s*top:(.*)$`)

// FetchSupportedIDs returns the set of ids known to CoinGecko, served from
// cache while younger than the configured TTL
func (c *Client) FetchSupportedIDs(ctx context.Context) (map[string]struct{}, error) {
	ctx, span := tracing.Tracer().Start(ctx, "coingecko.fetch-supported-ids")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	var coins []CoinListItem
	coins, err = cache.CachedFetch(ctx, c.cache, coinsListCacheKey, c.cfg.Coingecko.CoinsCacheTTL, c.fetchCoinsList)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supported coin ids: %w", err)
	}

	supported := make(map[string]struct{}, len(coins))
	for _, coin := range coins {
		if coin.ID != "" {
			supported[coin.ID] = struct{}{}
		}
	}
	span.SetAttributes(attribute.Int("coingecko.supported", len(supported)))
	return supported, nil
}

func (c *Client) fetchCoinsList(ctx context.Context) ([]CoinListItem, error) {
	resp, err := c.get(ctx, c.policy.WithRetries(listRetries), c.newRequest(CoinsListPath))
	if err != nil {
		return nil, err
	}

	var coins []CoinListItem
	if err := json.Unmarshal(resp.Body, &coins); err != nil {
		return nil, fmt.Errorf("failed to decode coins list: %w", err)
	}

	if limit := c.cfg.Coingecko.CoinsCacheLimit; limit > 0 && len(coins) > limit {
		coins = coins[:limit]
	}
	log.Printf("CoinGecko: fetched coins list with %d entries", len(coins))
	return coins, nil
}

// FetchTopIDs returns the ids of the top n coins by market cap, in rank order
func (c *Client) FetchTopIDs(ctx context.Context, n int) ([]string, error) {
	ctx, span := tracing.Tracer().Start(ctx, "coingecko.fetch-top-ids")
	span.SetAttributes(attribute.Int("coingecko.top_n", n))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	var ids []string
	key := fmt.Sprintf("coingecko-top-%d", n)
	ids, err = cache.CachedFetch(ctx, c.cache, key, c.cfg.Coingecko.CoinsCacheTTL, func(ctx context.Context) ([]string, error) {
		return c.fetchMarkets(ctx, n)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top %d coin ids: %w", n, err)
	}
	return ids, nil
}

func (c *Client) fetchMarkets(ctx context.Context, n int) ([]string, error) {
	rb := c.newRequest(MarketsPath).
		With("vs_currency", "usd").
		With("order", "market_cap_desc").
		With("per_page", strconv.Itoa(n)).
		With("page", "1").
		With("sparkline", "false")

	resp, err := c.get(ctx, c.policy.WithRetries(listRetries), rb)
	if err != nil {
		return nil, err
	}

	var markets []MarketItem
	if err := json.Unmarshal(resp.Body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode markets: %w", err)
	}

	ids := make([]string, 0, len(markets))
	for _, m := range markets {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

// ResolveConfiguredIDs turns the configured value into an ordered id list.
// "top:N" resolves through the markets endpoint, anything else is a comma
// separated literal list. An empty value falls back to topN when it is set.
func (c *Client) ResolveConfiguredIDs(ctx context.Context, raw string, topN int) ([]string, error) {
	if m := topDirective.FindStringSubmatch(raw); m != nil {
		n, err := strconv.Atoi(strings.TrimSpace(m[1]))
		if err != nil || n <= 0 {
			n = topN
			if n <= 0 {
				n = defaultTopN
			}
			log.Printf("CoinGecko: invalid top directive %q, using top:%d", raw, n)
		}
		return c.FetchTopIDs(ctx, n)
	}

	ids := config.SplitList(raw, strings.ToLower)
	if len(ids) == 0 && topN > 0 {
		return c.FetchTopIDs(ctx, topN)
	}
	return ids, nil
}

// FilterSupported splits ids into those present in supported and the dropped rest, keeping order
func FilterSupported(ids []string, supported map[string]struct{}) (kept []string, dropped []string) {
	kept = make([]string, 0, len(ids))
	dropped = make([]string, 0)
	for _, id := range ids {
		if _, ok := supported[id]; ok {
			kept = append(kept, id)
		} else {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		log.Printf("CoinGecko: dropping %d unsupported ids: %s", len(dropped), strings.Join(dropped, ", "))
	}
	return kept, dropped
}
