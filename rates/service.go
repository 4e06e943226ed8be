package rates

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/status-im/market-rates/binance"
	"github.com/status-im/market-rates/coingecko"
	"github.com/status-im/market-rates/coinpaprika"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/fetch_common"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/metrics"
	"github.com/status-im/market-rates/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// OperationFetchAndStore is the monitoring operation of an update run
const OperationFetchAndStore = "fetch_and_store"

// NoDataAlertPrefix starts the alert sent when no tier produced any quote
const NoDataAlertPrefix = "No crypto rates were fetched"

// ErrNoFallbackData is returned when the primary provider produced nothing
// and every fallback tier that was tried failed with an error.
var ErrNoFallbackData = errors.New("every fallback provider failed")

// Providers groups the upstream clients used by a run
type Providers struct {
	Universe  interfaces.ICoinUniverse
	Primary   interfaces.IPrimaryProvider
	Secondary interfaces.ISecondaryProvider
	Tertiary  interfaces.ITertiaryProvider
	Fiat      interfaces.IFiatProvider
}

// Result describes a finished update run
type Result struct {
	RunID          string
	Provenance     string
	Providers      []string
	Rates          interfaces.RatesTable
	MissingSymbols []string
	Latest         *interfaces.LatestPayload
	Snapshot       *interfaces.SnapshotPayload
	Fiat           *interfaces.FiatPayload
	Diagnostics    *Diagnostics
}

// Service runs the fetch, fallback, expansion and persistence cycle
type Service struct {
	cfg             *config.Config
	providers       Providers
	store           interfaces.IRatesStore
	alerts          interfaces.IAlertSender
	metricsWriter   *metrics.MetricsWriter
	secondaryPolicy fetch_common.RetryPolicy

	now      func() time.Time
	newRunID func() string
}

func NewService(cfg *config.Config, providers Providers, store interfaces.IRatesStore, alerts interfaces.IAlertSender) *Service {
	return &Service{
		cfg:             cfg,
		providers:       providers,
		store:           store,
		alerts:          alerts,
		metricsWriter:   metrics.NewMetricsWriter(metrics.ServiceRates),
		secondaryPolicy: fetch_common.NewRetryPolicy(cfg, cfg.Binance.Retries, "Binance"),
		now:             time.Now,
		newRunID:        uuid.NewString,
	}
}

// Update performs one complete run. It returns an error only when the run
// could not produce anything worth persisting: the configuration could not
// be resolved, the fiat feed failed, every fallback tier failed with an
// error while the primary provider produced nothing, or persistence failed.
func (s *Service) Update(ctx context.Context) (*Result, error) {
	ctx, span := tracing.Tracer().Start(ctx, "rates.update")
	start := s.now()
	runID := s.newRunID()
	span.SetAttributes(attribute.String("rates.run_id", runID))

	result, err := s.update(ctx, runID, start)

	status := string(interfaces.StatusOK)
	switch {
	case err != nil:
		status = string(interfaces.StatusError)
	case result.Provenance == ProvenanceNone || len(result.MissingSymbols) > 0:
		status = string(interfaces.StatusWarn)
	}
	s.metricsWriter.RecordRun(s.now().Sub(start), status)
	tracing.EndSpan(span, err)
	return result, err
}

func (s *Service) update(ctx context.Context, runID string, start time.Time) (*Result, error) {
	diag := newDiagnostics(s.cfg.Rates.RecentErrors)

	if err := s.store.InitStore(ctx); err != nil {
		return nil, s.fail(ctx, runID, start, diag, fmt.Errorf("failed to init store: %w", err))
	}

	req, err := ResolveRequest(ctx, s.cfg, s.providers.Universe)
	if err != nil {
		return nil, s.fail(ctx, runID, start, diag, err)
	}
	log.Printf("Rates: run %s for %d ids, fiats %s", runID, len(req.IDs), strings.Join(req.Fiats, ","))

	c := newCascade(diag, s.metricsWriter)
	primary, fallbackSymbols := s.fetchPrimary(ctx, req, c)
	if err := ctx.Err(); err != nil {
		return nil, s.fail(ctx, runID, start, diag, err)
	}

	attempted, failed := c.runFallbacks(ctx, s.fallbackTiers(), fallbackSymbols)
	if err := ctx.Err(); err != nil {
		return nil, s.fail(ctx, runID, start, diag, err)
	}
	diag.MissingSymbols = c.remaining(fallbackSymbols)

	var cryptoErr error
	if len(c.data) == 0 && attempted > 0 && failed == attempted {
		cryptoErr = fmt.Errorf("%w: %s", ErrNoFallbackData, strings.Join(diag.RecentErrors, "; "))
	}

	// fiat runs regardless of the crypto outcome
	fetchedAt := s.now().UTC()
	fiatTable, err := s.providers.Fiat.FetchFiatTable(ctx)
	if err != nil {
		diag.AddError("fiat", err)
		return nil, s.fail(ctx, runID, start, diag, fmt.Errorf("failed to fetch fiat rates: %w", err))
	}
	fiatPayload := buildFiatPayload(fiatTable, fetchedAt)
	if err := s.persistFiat(ctx, fiatPayload, fetchedAt); err != nil {
		return nil, s.fail(ctx, runID, start, diag, err)
	}

	if cryptoErr != nil {
		return nil, s.fail(ctx, runID, start, diag, cryptoErr)
	}

	table := Expand(c.data, req.Fiats, fiatTable)
	provenance := c.provenance()
	providers := c.providers
	if providers == nil {
		providers = []string{}
	}
	s.metricsWriter.RecordProvenance(provenance, len(c.data))

	in := payloadInput{
		provenance:  provenance,
		providers:   providers,
		fetchedAt:   fetchedAt,
		rates:       table,
		fiat:        fiatTable,
		headers:     primary.Headers,
		rawResponse: rawDump(primary.RawResponse, c.data),
	}
	result := &Result{
		RunID:          runID,
		Provenance:     provenance,
		Providers:      providers,
		Rates:          table,
		MissingSymbols: diag.MissingSymbols,
		Latest:         buildLatest(in),
		Snapshot:       buildSnapshot(in),
		Fiat:           fiatPayload,
		Diagnostics:    diag,
	}

	entry := s.monitoringEntry(runID, provenance, interfaces.StatusOK, map[string]any{
		"fetchedAt": fetchedAt,
		"providers": providers,
		"assets":    len(c.data),
		"fiatBase":  fiatTable.Base,
	})
	s.raiseAlerts(ctx, req, c, primary, result, entry)

	if err := s.persist(ctx, result, entry, start, fetchedAt); err != nil {
		return result, err
	}

	log.Printf("Rates: run %s finished with provenance %s, %d assets", runID, provenance, len(c.data))
	return result, nil
}

// fetchPrimary filters the configured ids, calls the primary provider and
// returns its result together with the symbols the fallback tiers must cover.
func (s *Service) fetchPrimary(ctx context.Context, req *Request, c *cascade) (*interfaces.ProviderResult, []string) {
	diag := c.diag

	supported, err := s.providers.Universe.FetchSupportedIDs(ctx)
	if err != nil {
		log.Printf("Rates: failed to fetch supported ids, treating every id as unsupported: %v", err)
		diag.AddError("coingecko coins list", err)
		supported = map[string]struct{}{}
	}
	diag.SupportedCount = len(supported)

	kept, dropped := coingecko.FilterSupported(req.IDs, supported)
	diag.DroppedIDs = dropped

	if len(kept) == 0 {
		log.Printf("Rates: none of the %d configured ids is supported by the primary provider, skipping it", len(req.IDs))
		return interfaces.NewProviderResult(coingecko.ProviderName), req.fallbackSymbols(req.IDs)
	}

	primary, err := s.providers.Primary.FetchPrices(ctx, kept, req.PrimaryFiats)
	if err != nil {
		log.Printf("Rates: primary provider failed: %v", err)
		diag.AddError(coingecko.ProviderName, err)
	}
	if primary == nil {
		primary = interfaces.NewProviderResult(coingecko.ProviderName)
	}
	diag.AddMessages(primary.Errors)
	diag.InvalidIDs = primary.InvalidIDs
	diag.RecoveredIDs = primary.RecoveredIDs

	bySymbol := make(map[string]interfaces.Quote, len(primary.Data))
	for _, id := range kept {
		if quote, ok := primary.Data[id]; ok {
			if _, dup := bySymbol[SymbolFor(id)]; !dup {
				bySymbol[SymbolFor(id)] = quote
			}
		}
	}
	c.merge(TierPrimary, primary.Provider, bySymbol, nil)

	// invalid ids were rejected individually, no tier can price them
	candidates := without(kept, primary.InvalidIDs)
	switch {
	case len(c.data) == 0:
		log.Printf("Rates: primary provider returned no data for %d ids", len(kept))
		return primary, req.fallbackSymbols(candidates)
	case len(primary.Missing) > 0:
		missing := without(primary.Missing, primary.InvalidIDs)
		log.Printf("Rates: primary provider is missing %d ids: %s", len(missing), strings.Join(missing, ", "))
		return primary, Symbols(missing)
	}
	return primary, nil
}

func (s *Service) fallbackTiers() []fallbackTier {
	return []fallbackTier{
		{name: TierSecondary, provider: binance.ProviderName, fetch: s.fetchSecondary},
		{name: TierTertiary, provider: coinpaprika.ProviderName, fetch: s.providers.Tertiary.FetchBySymbolSearch},
	}
}

// fetchSecondary retries the whole symbol set, 451 is final
func (s *Service) fetchSecondary(ctx context.Context, symbols []string) (*interfaces.ProviderResult, error) {
	var partial *interfaces.ProviderResult
	res, err := fetch_common.Retry(ctx, s.secondaryPolicy, func(ctx context.Context, attempt int) (*interfaces.ProviderResult, error) {
		res, err := s.providers.Secondary.FetchBySymbol(ctx, symbols)
		if res != nil {
			partial = res
		}
		return res, err
	})
	if err != nil {
		return partial, err
	}
	return res, nil
}

func (s *Service) raiseAlerts(ctx context.Context, req *Request, c *cascade, primary *interfaces.ProviderResult, result *Result, entry *interfaces.MonitoringEntry) {
	diag := c.diag

	switch {
	case len(c.data) == 0:
		entry.Status = interfaces.StatusWarn
		entry.Meta["diagnostics"] = diag
		s.sendAlert(ctx, fmt.Sprintf("%s for %d configured ids (provider=%s). %s",
			NoDataAlertPrefix, len(req.IDs), ProvenanceNone, diag.Summary()))

	case len(result.MissingSymbols) > 0:
		entry.Status = interfaces.StatusWarn
		entry.Meta["diagnostics"] = diag
		entry.Meta["missingSymbols"] = result.MissingSymbols
		s.sendAlert(ctx, fmt.Sprintf("Fallback providers could not recover %d symbols: %s. Proceeding with partial data (provider=%s).",
			len(result.MissingSymbols), strings.Join(result.MissingSymbols, ", "), result.Provenance))
	}

	if len(primary.InvalidIDs) > 0 {
		entry.Meta["invalidIds"] = primary.InvalidIDs
		s.sendAlert(ctx, fmt.Sprintf("CoinGecko rejected %d invalid ids: %s. Recovered %d ids with individual requests.",
			len(primary.InvalidIDs), strings.Join(primary.InvalidIDs, ", "), len(primary.RecoveredIDs)))
	}
}

// sendAlert is best effort, delivery failures are only logged
func (s *Service) sendAlert(ctx context.Context, text string) {
	res := s.alerts.SendAlert(ctx, text)
	metrics.RecordAlert(res.Reason)
	if !res.OK {
		log.Printf("Rates: alert not delivered (%s): %s", res.Reason, res.Error)
	}
}

func (s *Service) persistFiat(ctx context.Context, payload *interfaces.FiatPayload, date time.Time) error {
	if err := s.store.WriteLatestFiat(ctx, payload); err != nil {
		return fmt.Errorf("failed to write latest fiat rates: %w", err)
	}
	if err := s.store.WriteFiatSnapshot(ctx, payload, date); err != nil {
		return fmt.Errorf("failed to write fiat snapshot: %w", err)
	}
	return nil
}

// persist writes the monitoring entry first so it exists even when the
// latest or snapshot write fails.
func (s *Service) persist(ctx context.Context, result *Result, entry *interfaces.MonitoringEntry, start, date time.Time) error {
	s.writeMonitoring(ctx, entry, start)
	if err := s.store.WriteLatest(ctx, result.Latest); err != nil {
		return fmt.Errorf("failed to write latest rates: %w", err)
	}
	if err := s.store.WriteSnapshot(ctx, result.Snapshot, date); err != nil {
		return fmt.Errorf("failed to write rates snapshot: %w", err)
	}
	return nil
}

// fail writes a best effort error entry and returns err
func (s *Service) fail(ctx context.Context, runID string, start time.Time, diag *Diagnostics, err error) error {
	log.Printf("Rates: run %s failed: %v", runID, err)
	entry := s.monitoringEntry(runID, coingecko.ProviderName, interfaces.StatusError, map[string]any{
		"error":       err.Error(),
		"diagnostics": diag,
	})
	s.writeMonitoring(context.WithoutCancel(ctx), entry, start)
	return err
}

func (s *Service) monitoringEntry(runID, provider string, status interfaces.MonitoringStatus, meta map[string]any) *interfaces.MonitoringEntry {
	return &interfaces.MonitoringEntry{
		RunID:     runID,
		Provider:  provider,
		Operation: OperationFetchAndStore,
		Status:    status,
		Meta:      meta,
	}
}

// writeMonitoring stamps the entry and writes it, failures are only logged
func (s *Service) writeMonitoring(ctx context.Context, entry *interfaces.MonitoringEntry, start time.Time) {
	now := s.now()
	entry.Timestamp = now.UTC()
	entry.DurationMs = now.Sub(start).Milliseconds()
	if err := s.store.WriteMonitoringLog(ctx, *entry); err != nil {
		log.Printf("Rates: failed to write monitoring log: %v", err)
	}
}

func without(list []string, exclude []string) []string {
	if len(exclude) == 0 {
		return list
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		skip[v] = struct{}{}
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := skip[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
