package staleness

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/metrics"
	"github.com/status-im/market-rates/rates"
)

// Monitoring operations written by the checker
const (
	OperationStaleness = "staleness"
	OperationAlertSent = "alert_sent"
)

// Reasons for a result that is not stale
const (
	ReasonNoLatest    = "no-latest"
	ReasonNoTimestamp = "no-timestamp"
)

const unknownProvider = "unknown"

// Result describes one staleness check
type Result struct {
	Stale       bool
	Reason      string
	Provider    string
	LastUpdated time.Time
	AlertSent   bool
	Remediated  bool
}

// Checker detects a latest record that stopped being refreshed, alerts with
// debouncing and optionally runs one update as remediation.
type Checker struct {
	cfg           config.StalenessConfig
	store         interfaces.IRatesStore
	states        interfaces.IAlertStateStore
	alerts        interfaces.IAlertSender
	remediator    rates.IUpdater
	metricsWriter *metrics.MetricsWriter
	now           func() time.Time
}

// NewChecker creates a checker, remediator may be nil
func NewChecker(cfg *config.Config, store interfaces.IRatesStore, states interfaces.IAlertStateStore,
	alerts interfaces.IAlertSender, remediator rates.IUpdater) *Checker {
	return &Checker{
		cfg:           cfg.Staleness,
		store:         store,
		states:        states,
		alerts:        alerts,
		remediator:    remediator,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceStaleness),
		now:           time.Now,
	}
}

// AlertKey is the AlertState key of a provenance label
func AlertKey(provider string) string {
	if provider == "" {
		provider = unknownProvider
	}
	return "staleness-" + provider
}

func (c *Checker) Run(ctx context.Context) (*Result, error) {
	start := c.now()
	result, err := c.run(ctx)

	status := string(interfaces.StatusOK)
	switch {
	case err != nil:
		status = string(interfaces.StatusError)
	case result.Stale:
		status = string(interfaces.StatusWarn)
	}
	c.metricsWriter.RecordRun(c.now().Sub(start), status)
	return result, err
}

func (c *Checker) run(ctx context.Context) (*Result, error) {
	latest, err := c.store.ReadLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest rates: %w", err)
	}
	if latest == nil {
		log.Printf("Staleness: no latest record yet")
		return &Result{Reason: ReasonNoLatest}, nil
	}
	if latest.Timestamp.IsZero() {
		return &Result{Reason: ReasonNoTimestamp, Provider: latest.Provider}, nil
	}

	now := c.now().UTC()
	result := &Result{
		Provider:    latest.Provider,
		LastUpdated: latest.Timestamp,
		Stale:       now.Sub(latest.Timestamp) > c.cfg.StaleAfter(),
	}
	alertKey := AlertKey(latest.Provider)

	state, err := c.states.GetAlertState(ctx, alertKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read alert state %s: %w", alertKey, err)
	}

	if !result.Stale {
		if state != nil && state.FailureCount > 0 {
			log.Printf("Staleness: %s is fresh again, resetting %d failures", alertKey, state.FailureCount)
			state.FailureCount = 0
			state.LastCheckedAt = now
			if err := c.states.SetAlertState(ctx, alertKey, *state); err != nil {
				return nil, fmt.Errorf("failed to write alert state %s: %w", alertKey, err)
			}
		}
		return result, nil
	}

	log.Printf("Staleness: latest record from %s is stale (last updated %s)", latest.Provider, latest.Timestamp.Format(time.RFC3339))
	c.writeMonitoring(ctx, latest.Provider, OperationStaleness, interfaces.StatusWarn, map[string]any{
		"lastUpdated":     latest.Timestamp,
		"staleAfterHours": c.cfg.StaleAfterHours,
		"detectedAt":      now,
	})

	if state == nil {
		state = &interfaces.AlertState{FirstSeen: now}
	}
	state.FailureCount++
	state.LastCheckedAt = now

	if c.shouldAlert(state, now) {
		res := c.alerts.SendAlert(ctx, fmt.Sprintf(
			"[ALERT] Exchange rates stale, provider: %s\nLast updated: %s\nFirst seen: %s\nFailures: %d",
			providerLabel(latest.Provider),
			latest.Timestamp.Format(time.RFC3339),
			state.FirstSeen.Format(time.RFC3339),
			state.FailureCount,
		))
		metrics.RecordAlert(res.Reason)
		state.LastAlertSentAt = &now
		state.LastAlertResult = &res
		result.AlertSent = true
	} else {
		log.Printf("Staleness: alert for %s suppressed (failures=%d, threshold=%d, debounce=%s)",
			alertKey, state.FailureCount, c.cfg.AlertThresholdRuns, c.cfg.Debounce())
	}

	if c.cfg.RemediationEnabled && c.remediator != nil {
		result.Remediated = c.remediate(ctx, state)
	}

	if err := c.states.SetAlertState(ctx, alertKey, *state); err != nil {
		return nil, fmt.Errorf("failed to write alert state %s: %w", alertKey, err)
	}

	if result.AlertSent {
		c.writeMonitoring(ctx, latest.Provider, OperationAlertSent, interfaces.StatusOK, map[string]any{
			"alertId": alertKey,
			"via":     "telegram",
			"sentAt":  now,
		})
	}
	return result, nil
}

// shouldAlert requires enough failures and an expired debounce window
func (c *Checker) shouldAlert(state *interfaces.AlertState, now time.Time) bool {
	if state.FailureCount < c.cfg.AlertThresholdRuns {
		return false
	}
	return state.LastAlertSentAt == nil || now.Sub(*state.LastAlertSentAt) > c.cfg.Debounce()
}

func (c *Checker) remediate(ctx context.Context, state *interfaces.AlertState) bool {
	log.Printf("Staleness: attempting remediation with a rates update")
	res, err := c.remediator.Update(ctx)
	at := c.now().UTC()
	state.LastRemediationAt = &at
	if err != nil {
		log.Printf("Staleness: remediation failed: %v", err)
		state.LastRemediationResult = "error: " + err.Error()
		return false
	}
	state.LastRemediationResult = "ok"
	if res != nil {
		state.LastRemediationResult += ": " + res.Provenance
	}
	return true
}

func (c *Checker) writeMonitoring(ctx context.Context, provider, operation string, status interfaces.MonitoringStatus, meta map[string]any) {
	entry := interfaces.MonitoringEntry{
		RunID:     uuid.NewString(),
		Provider:  providerLabel(provider),
		Operation: operation,
		Status:    status,
		Meta:      meta,
		Timestamp: c.now().UTC(),
	}
	if err := c.store.WriteMonitoringLog(ctx, entry); err != nil {
		log.Printf("Staleness: failed to write monitoring entry: %v", err)
	}
}

func providerLabel(provider string) string {
	if provider == "" {
		return unknownProvider
	}
	return provider
}
