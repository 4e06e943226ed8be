package rates

import (
	"context"
	"log"
	"strings"

	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/metrics"
)

// Tier names, joined with "+" they form the provenance label
const (
	TierPrimary   = "primary"
	TierSecondary = "secondary"
	TierTertiary  = "tertiary"

	ProvenanceNone = "none"
)

// fallbackTier is one step of the fallback ladder. fetch receives only the
// symbols still missing when the tier is reached.
type fallbackTier struct {
	name     string
	provider string
	fetch    func(ctx context.Context, symbols []string) (*interfaces.ProviderResult, error)
}

// cascade accumulates quotes by uppercase symbol across tiers
type cascade struct {
	data         map[string]interfaces.Quote
	contributors []string
	providers    []string
	diag         *Diagnostics
	metrics      *metrics.MetricsWriter
}

func newCascade(diag *Diagnostics, mw *metrics.MetricsWriter) *cascade {
	return &cascade{
		data:    make(map[string]interfaces.Quote),
		diag:    diag,
		metrics: mw,
	}
}

// merge adds quotes that are not known yet. When allowed is not nil only
// those symbols are taken. The tier is recorded as a contributor when at
// least one quote was added.
func (c *cascade) merge(tier, provider string, quotes map[string]interfaces.Quote, allowed []string) int {
	var allow map[string]struct{}
	if allowed != nil {
		allow = make(map[string]struct{}, len(allowed))
		for _, s := range allowed {
			allow[s] = struct{}{}
		}
	}

	added := 0
	for key, quote := range quotes {
		symbol := strings.ToUpper(key)
		if _, known := c.data[symbol]; known {
			continue
		}
		if allow != nil {
			if _, ok := allow[symbol]; !ok {
				continue
			}
		}
		positive := make(interfaces.Quote, len(quote))
		for currency, v := range quote {
			if v > 0 {
				positive[strings.ToLower(currency)] = v
			}
		}
		if len(positive) == 0 {
			continue
		}
		c.data[symbol] = positive
		added++
	}

	if added > 0 {
		c.contributors = append(c.contributors, tier)
		c.providers = append(c.providers, provider)
	}
	return added
}

// remaining returns the symbols without data, in input order
func (c *cascade) remaining(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := c.data[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// runFallbacks folds the tiers over the symbols still missing and reports
// how many tiers were called and how many of them returned an error.
func (c *cascade) runFallbacks(ctx context.Context, tiers []fallbackTier, symbols []string) (attempted, failed int) {
	for _, tier := range tiers {
		missing := c.remaining(symbols)
		if len(missing) == 0 {
			return attempted, failed
		}
		if ctx.Err() != nil {
			return attempted, failed
		}

		log.Printf("Rates: trying %s tier (%s) for %d symbols: %s", tier.name, tier.provider, len(missing), strings.Join(missing, ", "))
		res, err := tier.fetch(ctx, missing)
		attempted++

		outcome := "empty"
		if err != nil {
			failed++
			outcome = "error"
			c.diag.AddError(tier.provider, err)
			if fetch_common.IsGeoRestricted(err) {
				log.Printf("Rates: %s is geo-restricted (451), moving to the next tier", tier.provider)
			} else {
				log.Printf("Rates: %s tier failed: %v", tier.provider, err)
			}
		}

		if res != nil {
			c.diag.AddMessages(res.Errors)
			for symbol, tried := range res.TriedIDs {
				c.diag.TriedIDs[symbol] = append(c.diag.TriedIDs[symbol], tried...)
			}
			if recovered := c.merge(tier.name, tier.provider, res.Data, missing); recovered > 0 {
				outcome = "recovered"
				log.Printf("Rates: %s recovered %d of %d symbols", tier.provider, recovered, len(missing))
			}
		}

		if c.metrics != nil {
			c.metrics.RecordFallbackTier(tier.name, outcome)
		}
	}
	return attempted, failed
}

// provenance joins the contributing tiers, "none" when nothing contributed
func (c *cascade) provenance() string {
	if len(c.contributors) == 0 {
		return ProvenanceNone
	}
	return strings.Join(c.contributors, "+")
}
