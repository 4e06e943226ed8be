package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/status-im/market-rates/interfaces"
)

// handleLatestRates responds with the latest rates record. The optional
// fiats and symbols parameters narrow the table.
func (s *Server) handleLatestRates(w http.ResponseWriter, r *http.Request) {
	latest, err := s.rates.GetLatest(r.Context())
	if err != nil {
		log.Printf("API: failed to read latest rates: %v", err)
		http.Error(w, "Failed to read rates", http.StatusInternalServerError)
		return
	}
	if latest == nil {
		http.Error(w, "No rates available", http.StatusServiceUnavailable)
		return
	}

	fiats := splitParamLowercase(getParamLowercase(r, "fiats"))
	symbols := splitParamLowercase(getParamLowercase(r, "symbols"))
	if len(fiats) == 0 && len(symbols) == 0 {
		s.sendJSONResponse(w, r, latest)
		return
	}

	filtered := *latest
	filtered.Rates = filterRates(latest.Rates, fiats, symbols)
	s.sendJSONResponse(w, r, filtered)
}

// handleLatestFiat responds with the latest fiat reference table
func (s *Server) handleLatestFiat(w http.ResponseWriter, r *http.Request) {
	latest, err := s.rates.GetLatestFiat(r.Context())
	if err != nil {
		log.Printf("API: failed to read latest fiat rates: %v", err)
		http.Error(w, "Failed to read fiat rates", http.StatusInternalServerError)
		return
	}
	if latest == nil {
		http.Error(w, "No fiat rates available", http.StatusServiceUnavailable)
		return
	}
	s.sendJSONResponse(w, r, latest)
}

// handleRefresh schedules an update outside the interval
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.rates.ForceUpdate()
	w.WriteHeader(http.StatusAccepted)
}

// filterRates keeps the requested fiat buckets and symbols, an empty list keeps everything
func filterRates(table interfaces.RatesTable, fiats, symbols []string) interfaces.RatesTable {
	keepFiat := toUpperSet(fiats)
	keepSymbol := toUpperSet(symbols)

	out := make(interfaces.RatesTable, len(table))
	for fiat, assets := range table {
		if keepFiat != nil {
			if _, ok := keepFiat[fiat]; !ok {
				continue
			}
		}
		bucket := make(map[string]float64, len(assets))
		for symbol, v := range assets {
			if keepSymbol != nil {
				if _, ok := keepSymbol[symbol]; !ok {
					continue
				}
			}
			bucket[symbol] = v
		}
		out[fiat] = bucket
	}
	return out
}

func toUpperSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToUpper(v)] = struct{}{}
	}
	return set
}
