package rates

import (
	"strings"

	"github.com/status-im/market-rates/fiat"
	"github.com/status-im/market-rates/interfaces"
)

// Expand builds the rates table for the requested fiats. usd and eur are
// first back-filled from each other, then every requested fiat missing
// from a quote is derived from usd, or from eur when usd cannot be converted.
// Values that cannot be derived are left out.
func Expand(data map[string]interfaces.Quote, fiats []string, table *interfaces.FiatTable) interfaces.RatesTable {
	out := make(interfaces.RatesTable, len(fiats))
	for _, f := range fiats {
		out[strings.ToUpper(f)] = make(map[string]float64, len(data))
	}

	for symbol, quote := range data {
		values := backfill(quote, table)
		for _, f := range fiats {
			if v, ok := deriveValue(values, f, table); ok {
				out[strings.ToUpper(f)][symbol] = v
			}
		}
	}

	for code, assets := range out {
		if len(assets) == 0 {
			delete(out, code)
		}
	}
	return out
}

// backfill returns a lowercase copy of quote where usd and eur derive from each other
func backfill(quote interfaces.Quote, table *interfaces.FiatTable) interfaces.Quote {
	values := make(interfaces.Quote, len(quote)+2)
	for currency, v := range quote {
		if v > 0 {
			values[strings.ToLower(currency)] = v
		}
	}

	for _, pair := range [][2]string{{"usd", "eur"}, {"eur", "usd"}} {
		target, source := pair[0], pair[1]
		if _, ok := values[target]; ok {
			continue
		}
		if v, ok := values[source]; ok {
			if converted, ok := fiat.Convert(table, v, source, target); ok {
				values[target] = converted
			}
		}
	}
	return values
}

func deriveValue(values interfaces.Quote, target string, table *interfaces.FiatTable) (float64, bool) {
	target = strings.ToLower(target)
	if v, ok := values[target]; ok {
		return v, true
	}
	for _, source := range primaryFiats {
		if v, ok := values[source]; ok {
			if converted, ok := fiat.Convert(table, v, source, target); ok {
				return converted, true
			}
		}
	}
	return 0, false
}
