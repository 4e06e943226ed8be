package binance

import "strings"

// PairSet maps trading pairs (e.g. "BTCUSDT") back to the base symbol they
// were built from (e.g. "BTC").
type PairSet struct {
	quoteAsset string
	pairs      []string
	bases      map[string]string
}

// NewPairSet builds pairs for baseSymbols against quoteAsset. Symbols are
// uppercased, empty and duplicate symbols are skipped.
func NewPairSet(baseSymbols []string, quoteAsset string) *PairSet {
	ps := &PairSet{
		quoteAsset: strings.ToUpper(quoteAsset),
		pairs:      make([]string, 0, len(baseSymbols)),
		bases:      make(map[string]string, len(baseSymbols)),
	}
	for _, base := range baseSymbols {
		base = strings.ToUpper(strings.TrimSpace(base))
		if base == "" {
			continue
		}
		pair := base + ps.quoteAsset
		if _, ok := ps.bases[pair]; ok {
			continue
		}
		ps.bases[pair] = base
		ps.pairs = append(ps.pairs, pair)
	}
	return ps
}

// Pairs returns the pairs in request order
func (ps *PairSet) Pairs() []string {
	return ps.pairs
}

// Base returns the base symbol for pair
func (ps *PairSet) Base(pair string) (string, bool) {
	base, ok := ps.bases[strings.ToUpper(pair)]
	return base, ok
}
