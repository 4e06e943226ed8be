package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// single id requests during isolation get one retry
const isolationRetries = 1

// FetchPrices requests prices for ids in sequential batches. Batches that
// fail with 400 or 429 are isolated id by id so that invalid ids can be told
// apart from ids that were merely caught in a rejected batch. Only
// cancellation is returned as an error, upstream failures leave ids missing.
func (c *Client) FetchPrices(ctx context.Context, ids []string, vsCurrencies []string) (*interfaces.ProviderResult, error) {
	ctx, span := tracing.Tracer().Start(ctx, "coingecko.fetch-prices")
	span.SetAttributes(attribute.Int("coingecko.ids", len(ids)))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	result := interfaces.NewProviderResult(ProviderName)
	batches := fetch_common.SplitInChunks(ids, c.cfg.Coingecko.MaxIDsPerRequest)

	for i, batch := range batches {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		resp, batchErr := c.fetchBatch(ctx, batch, vsCurrencies, c.policy)
		switch {
		case batchErr == nil:
			mergeResponse(result, resp)
		case fetch_common.IsStatus(batchErr, http.StatusBadRequest, http.StatusTooManyRequests):
			log.Printf("CoinGecko: batch %d/%d returned %d, isolating %d ids", i+1, len(batches), fetch_common.StatusCode(batchErr), len(batch))
			c.isolateBatch(ctx, batch, vsCurrencies, result)
		default:
			log.Printf("CoinGecko: batch %d/%d failed for ids %s: %v", i+1, len(batches), strings.Join(batch, ","), batchErr)
			result.Errors = append(result.Errors, fmt.Sprintf("coingecko batch %d: %v", i+1, batchErr))
		}

		if i < len(batches)-1 {
			if err = fetch_common.Sleep(ctx, c.batchDelay()); err != nil {
				return result, err
			}
		}
	}

	result.Missing = fetch_common.Difference(ids, result.Data)
	span.SetAttributes(
		attribute.Int("coingecko.found", len(result.Data)),
		attribute.Int("coingecko.invalid", len(result.InvalidIDs)),
	)
	return result, nil
}

// isolateBatch re-requests every id of a rejected batch on its own
func (c *Client) isolateBatch(ctx context.Context, batch []string, vsCurrencies []string, result *interfaces.ProviderResult) {
	policy := c.policy.WithRetries(isolationRetries)

	for _, id := range batch {
		if ctx.Err() != nil {
			return
		}

		resp, err := c.fetchBatch(ctx, []string{id}, vsCurrencies, policy)
		switch {
		case err == nil:
			mergeResponse(result, resp)
			if _, ok := result.Data[id]; ok {
				result.RecoveredIDs = append(result.RecoveredIDs, id)
			}
		case fetch_common.IsStatus(err, http.StatusBadRequest):
			log.Printf("CoinGecko: id %s rejected individually, marking invalid", id)
			result.InvalidIDs = append(result.InvalidIDs, id)
		default:
			log.Printf("CoinGecko: isolation request failed for id %s: %v", id, err)
			result.Errors = append(result.Errors, fmt.Sprintf("coingecko id %s: %v", id, err))
		}
	}

	if len(result.InvalidIDs) > 0 {
		log.Printf("CoinGecko: dropping unsupported/invalid ids: %s", strings.Join(result.InvalidIDs, ", "))
	}
}

type batchResponse struct {
	prices  map[string]interfaces.Quote
	headers http.Header
	raw     string
}

func (c *Client) fetchBatch(ctx context.Context, ids []string, vsCurrencies []string, policy fetch_common.RetryPolicy) (*batchResponse, error) {
	rb := c.newRequest(SimplePricePath).
		WithList("ids", ids).
		WithList("vs_currencies", vsCurrencies)

	resp, err := c.get(ctx, policy, rb)
	if err != nil {
		return nil, err
	}

	prices, err := parseSimplePrice(resp.Body)
	if err != nil {
		return nil, err
	}

	return &batchResponse{prices: prices, headers: resp.Header, raw: string(resp.Body)}, nil
}

// parseSimplePrice keeps positive prices only, ids without any are omitted
func parseSimplePrice(body []byte) (map[string]interfaces.Quote, error) {
	var decoded SimplePriceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode simple price response: %w", err)
	}

	prices := make(map[string]interfaces.Quote, len(decoded))
	for id, currencies := range decoded {
		quote := make(interfaces.Quote, len(currencies))
		for currency, price := range currencies {
			if price != nil && *price > 0 {
				quote[strings.ToLower(currency)] = *price
			}
		}
		if len(quote) > 0 {
			prices[id] = quote
		}
	}
	return prices, nil
}

func mergeResponse(result *interfaces.ProviderResult, resp *batchResponse) {
	for id, quote := range resp.prices {
		result.Data[id] = quote
	}
	for name, values := range resp.headers {
		result.Headers[name] = values
	}
	if result.RawResponse == "" {
		result.RawResponse = resp.raw
	}
}

func (c *Client) batchDelay() time.Duration {
	if c.cfg.IsTestMode() {
		return 0
	}
	return c.cfg.Coingecko.BatchDelay
}
