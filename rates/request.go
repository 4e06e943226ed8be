package rates

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
)

// primaryFiats are the only vs-currencies requested from the primary provider,
// everything else is derived through the fiat table.
var primaryFiats = []string{"usd", "eur"}

// wellKnownSymbols overrides the default upper(id) symbol mapping
var wellKnownSymbols = map[string]string{
	"bitcoin":  "BTC",
	"ethereum": "ETH",
}

var topDirective = regexp.MustCompile(`(?i)^\s*top:`)

// Request is the resolved configuration of one update run
type Request struct {
	// IDs are the configured primary ids, lowercase and in configured order
	IDs []string
	// Fiats are the requested fiat currencies, lowercase
	Fiats []string
	// PrimaryFiats always contains usd and eur
	PrimaryFiats []string
	// SymbolOverride replaces derived symbols for full fallbacks when set
	SymbolOverride []string
}

// SymbolFor maps a primary id to the symbol used by the fallback providers
func SymbolFor(id string) string {
	if sym, ok := wellKnownSymbols[strings.ToLower(id)]; ok {
		return sym
	}
	return strings.ToUpper(id)
}

// Symbols maps ids to symbols keeping order and dropping duplicates
func Symbols(ids []string) []string {
	symbols := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		sym := SymbolFor(id)
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		symbols = append(symbols, sym)
	}
	return symbols
}

// ResolveRequest reads the run configuration once. CRYPTO_USE_TOP_N takes
// precedence over a literal CRYPTO_IDS list, a top:N directive wins over both.
func ResolveRequest(ctx context.Context, cfg *config.Config, universe interfaces.ICoinUniverse) (*Request, error) {
	raw := cfg.Rates.CryptoIDs
	if cfg.Rates.UseTopN > 0 && !topDirective.MatchString(raw) {
		raw = ""
	}

	ids, err := universe.ResolveConfiguredIDs(ctx, raw, cfg.Rates.UseTopN)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured ids: %w", err)
	}

	fiats := cfg.Rates.FiatList()
	return &Request{
		IDs:            ids,
		Fiats:          fiats,
		PrimaryFiats:   selectPrimaryFiats(fiats),
		SymbolOverride: cfg.Rates.SymbolOverride(),
	}, nil
}

// selectPrimaryFiats returns usd and eur, requested ones first
func selectPrimaryFiats(requested []string) []string {
	selected := make([]string, 0, len(primaryFiats))
	for _, f := range requested {
		for _, p := range primaryFiats {
			if f == p {
				selected = append(selected, f)
			}
		}
	}
	for _, p := range primaryFiats {
		if !slices.Contains(selected, p) {
			selected = append(selected, p)
		}
	}
	return selected
}

// fallbackSymbols returns the symbol override when set, otherwise the symbols of ids
func (r *Request) fallbackSymbols(ids []string) []string {
	if len(r.SymbolOverride) > 0 {
		return r.SymbolOverride
	}
	return Symbols(ids)
}
