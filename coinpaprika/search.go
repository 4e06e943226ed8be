package coinpaprika

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// prefetchThreshold is the symbol count above which the top list is loaded up front
const prefetchThreshold = 5

// FetchBySymbolSearch resolves every symbol to CoinPaprika ids through search
// and fetches the first candidate with a usable ticker. When search rejects a
// symbol (400) or finds nothing, the symbol is mapped through the cached top
// list and, as a last resort, its lowercase form is tried as an id.
//
// An error is returned only when nothing resolved and every search failed
// with a transport or server error.
func (c *Client) FetchBySymbolSearch(ctx context.Context, symbols []string) (*interfaces.ProviderResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "coinpaprika.fetch-by-symbol-search")
	span.SetAttributes(attribute.Int("coinpaprika.symbols", len(symbols)))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	result := interfaces.NewProviderResult(ProviderName)
	if len(symbols) == 0 {
		return result, nil
	}

	var index *topIndex
	if len(symbols) > prefetchThreshold {
		index = c.loadTopIndex(ctx, len(symbols))
	}

	var lastSearchErr error
	searchFailures := 0

	for _, raw := range symbols {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" {
			continue
		}

		candidates, searchErr := c.search(ctx, symbol)
		switch {
		case searchErr == nil && len(candidates) > 0:
			c.resolveCandidates(ctx, symbol, orderCandidates(candidates, symbol), result)

		case searchErr == nil, fetch_common.IsStatus(searchErr, http.StatusBadRequest):
			rejected := searchErr != nil
			if rejected {
				log.Printf("CoinPaprika: search returned 400 for %s, trying top list mapping", symbol)
			} else {
				log.Printf("CoinPaprika: search returned no candidates for %s", symbol)
			}
			if index == nil || rejected {
				index = c.loadTopIndex(ctx, len(symbols))
			}
			policy := c.policy.WithRetries(0)
			if rejected {
				policy = c.policy
			}
			c.resolveFromTopList(ctx, symbol, index, policy, result)

		default:
			log.Printf("CoinPaprika: search failed for %s: %v", symbol, searchErr)
			result.Errors = append(result.Errors, fmt.Sprintf("coinpaprika search %s: %v", symbol, searchErr))
			if code := fetch_common.StatusCode(searchErr); code == 0 || code >= http.StatusInternalServerError {
				searchFailures++
				lastSearchErr = searchErr
			}
		}
	}

	for _, raw := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if _, ok := result.Data[symbol]; symbol != "" && !ok {
			result.Missing = append(result.Missing, symbol)
		}
	}

	span.SetAttributes(attribute.Int("coinpaprika.found", len(result.Data)))
	if len(result.Data) == 0 && searchFailures > 0 && searchFailures == len(result.Missing) {
		err = fmt.Errorf("coinpaprika search failed for every symbol: %w", lastSearchErr)
		return result, err
	}
	return result, nil
}

// orderCandidates moves the first exact symbol match to the front, keeping the rest in order
func orderCandidates(candidates []Coin, symbol string) []Coin {
	exact := -1
	for i, coin := range candidates {
		if strings.EqualFold(coin.Symbol, symbol) {
			exact = i
			break
		}
	}
	if exact <= 0 {
		return candidates
	}

	ordered := make([]Coin, 0, len(candidates))
	ordered = append(ordered, candidates[exact])
	ordered = append(ordered, candidates[:exact]...)
	ordered = append(ordered, candidates[exact+1:]...)
	return ordered
}

// resolveCandidates stops at the first candidate with a usable ticker
func (c *Client) resolveCandidates(ctx context.Context, symbol string, candidates []Coin, result *interfaces.ProviderResult) {
	for _, candidate := range candidates {
		if candidate.ID == "" {
			continue
		}
		result.TriedIDs[symbol] = append(result.TriedIDs[symbol], candidate.ID)

		quote, err := c.fetchCandidate(ctx, candidate.ID)
		if err == nil {
			result.Data[symbol] = quote
			return
		}
		log.Printf("CoinPaprika: ticker failed for candidate %s (symbol %s, status %d): %v",
			candidate.ID, symbol, fetch_common.StatusCode(err), err)
		if ctx.Err() != nil {
			return
		}
	}
	log.Printf("CoinPaprika: no usable ticker for symbol %s, tried ids: %s", symbol, strings.Join(result.TriedIDs[symbol], ", "))
}

// fetchCandidate retries a ticker once, and only after a 429
func (c *Client) fetchCandidate(ctx context.Context, id string) (interfaces.Quote, error) {
	single := c.policy.WithRetries(0)
	return fetch_common.Retry(ctx, c.retryOnRateLimit(), func(ctx context.Context, attempt int) (interfaces.Quote, error) {
		quote, err := c.fetchTicker(ctx, single, id)
		return quote, onlyRateLimited(err)
	})
}

// resolveFromTopList tries the top list mapping and then the lowercase symbol as id
func (c *Client) resolveFromTopList(ctx context.Context, symbol string, index *topIndex, policy fetch_common.RetryPolicy, result *interfaces.ProviderResult) {
	ids := make([]string, 0, 2)
	if id, ok := index.resolve(symbol); ok {
		log.Printf("CoinPaprika: matched %s via top list -> %s", symbol, id)
		ids = append(ids, id)
	}
	if guess := strings.ToLower(symbol); len(ids) == 0 || ids[0] != guess {
		ids = append(ids, guess)
	}

	for _, id := range ids {
		result.TriedIDs[symbol] = append(result.TriedIDs[symbol], id)
		quote, err := c.fetchTicker(ctx, policy, id)
		if err == nil {
			result.Data[symbol] = quote
			return
		}
		log.Printf("CoinPaprika: fallback ticker lookup failed for %s (id %s): %v", symbol, id, err)
		if ctx.Err() != nil {
			return
		}
	}
}
