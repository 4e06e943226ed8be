package coinpaprika

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/status-im/market-rates/cache"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeName lowercases s and collapses every run of non alphanumerics to one space
func normalizeName(s string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " "))
}

// FetchTopCoins returns the first n tickers ranked by CoinPaprika, cached
// under coinpaprika-top-<n>.
func (c *Client) FetchTopCoins(ctx context.Context, n int) ([]Coin, error) {
	key := fmt.Sprintf("coinpaprika-top-%d", n)
	return cache.CachedFetch(ctx, c.cache, key, c.cfg.Coinpaprika.TopCacheTTL, func(ctx context.Context) ([]Coin, error) {
		rb := c.newRequest(TickersPath).With("limit", strconv.Itoa(n))

		resp, err := c.get(ctx, c.policy, rb)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch top %d tickers: %w", n, err)
		}

		var coins []Coin
		if err := json.Unmarshal(resp.Body, &coins); err != nil {
			return nil, fmt.Errorf("failed to decode top tickers: %w", err)
		}
		if len(coins) > n {
			coins = coins[:n]
		}
		log.Printf("CoinPaprika: loaded top list with %d coins", len(coins))
		return coins, nil
	})
}

// topIndex maps symbols and normalized names of the top list to ids
type topIndex struct {
	bySymbol map[string]string
	byName   map[string]string
}

func newTopIndex(coins []Coin) *topIndex {
	idx := &topIndex{
		bySymbol: make(map[string]string, len(coins)),
		byName:   make(map[string]string, len(coins)),
	}
	for _, coin := range coins {
		if coin.ID == "" {
			continue
		}
		if sym := strings.ToUpper(coin.Symbol); sym != "" {
			idx.bySymbol[sym] = coin.ID
		}
		if name := normalizeName(coin.Name); name != "" {
			idx.byName[name] = coin.ID
		}
	}
	return idx
}

// resolve maps symbol to an id by symbol first and normalized name second
func (idx *topIndex) resolve(symbol string) (string, bool) {
	if idx == nil {
		return "", false
	}
	if id, ok := idx.bySymbol[strings.ToUpper(symbol)]; ok {
		return id, true
	}
	if name := normalizeName(symbol); name != "" {
		if id, ok := idx.byName[name]; ok {
			return id, true
		}
	}
	return "", false
}

// loadTopIndex fetches the top list sized for symbolCount, nil on failure
func (c *Client) loadTopIndex(ctx context.Context, symbolCount int) *topIndex {
	n := max(c.cfg.Coinpaprika.TopN, symbolCount)
	coins, err := c.FetchTopCoins(ctx, n)
	if err != nil {
		log.Printf("CoinPaprika: top list unavailable: %v", err)
		return nil
	}
	return newTopIndex(coins)
}
