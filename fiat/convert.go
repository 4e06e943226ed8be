package fiat

import (
	"strings"

	"github.com/status-im/market-rates/interfaces"
)

// Convert expresses value given in currency from in currency to using the
// table's cross rate value * rates[to] / rates[from]. It reports false when
// either code is unknown.
func Convert(table *interfaces.FiatTable, value float64, from, to string) (float64, bool) {
	if table == nil {
		return 0, false
	}
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return value, true
	}

	rateFrom, ok := table.Rates[from]
	if !ok || rateFrom <= 0 {
		return 0, false
	}
	rateTo, ok := table.Rates[to]
	if !ok {
		return 0, false
	}
	return value * (rateTo / rateFrom), true
}
