package rates

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/status-im/market-rates/events"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/scheduler"
)

// IUpdater runs a single update
type IUpdater interface {
	Update(ctx context.Context) (*Result, error)
}

// PeriodicUpdater runs the rates update on an interval in serve mode and
// keeps the last successful result in memory for the API.
type PeriodicUpdater struct {
	interval    time.Duration
	updater     IUpdater
	store       interfaces.IRatesStore
	scheduler   *scheduler.Scheduler
	updates     *events.Notifier
	initialized atomic.Bool

	mu         sync.RWMutex
	lastResult *Result
	lastError  error
	lastRunAt  time.Time
}

func NewPeriodicUpdater(interval time.Duration, updater IUpdater, store interfaces.IRatesStore) *PeriodicUpdater {
	return &PeriodicUpdater{
		interval: interval,
		updater:  updater,
		store:    store,
		updates:  events.NewNotifier(),
	}
}

// SubscribeOnUpdate signals after every successful run
func (u *PeriodicUpdater) SubscribeOnUpdate() events.ISubscription {
	return u.updates.Subscribe()
}

func (u *PeriodicUpdater) Start(ctx context.Context) error {
	log.Printf("Rates: starting periodic updater every %s", u.interval)

	u.scheduler = scheduler.New("rates update", u.interval, func(ctx context.Context) {
		u.runOnce(ctx)
	})
	u.scheduler.Start(ctx, true)
	return nil
}

func (u *PeriodicUpdater) Stop() {
	if u.scheduler != nil {
		u.scheduler.Stop()
	}
}

// ForceUpdate asks the scheduler for an immediate run
func (u *PeriodicUpdater) ForceUpdate() {
	if u.scheduler != nil {
		u.scheduler.Trigger()
	}
}

// IsInitialized reports whether at least one run succeeded
func (u *PeriodicUpdater) IsInitialized() bool {
	return u.initialized.Load()
}

func (u *PeriodicUpdater) runOnce(ctx context.Context) {
	result, err := u.updater.Update(ctx)

	u.mu.Lock()
	u.lastRunAt = time.Now()
	u.lastError = err
	if err == nil {
		u.lastResult = result
	}
	u.mu.Unlock()

	if err != nil {
		log.Printf("Rates: periodic update failed: %v", err)
		return
	}
	u.initialized.Store(true)
	u.updates.Notify(ctx)
}

// Status returns the time and error of the last run
func (u *PeriodicUpdater) Status() (time.Time, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.lastRunAt, u.lastError
}

// GetLatest returns the last payload produced in this process, or the one
// stored by a previous process.
func (u *PeriodicUpdater) GetLatest(ctx context.Context) (*interfaces.LatestPayload, error) {
	u.mu.RLock()
	result := u.lastResult
	u.mu.RUnlock()

	if result != nil && result.Latest != nil {
		return result.Latest, nil
	}
	return u.store.ReadLatest(ctx)
}

// GetLatestFiat is GetLatest for the fiat feed
func (u *PeriodicUpdater) GetLatestFiat(ctx context.Context) (*interfaces.FiatPayload, error) {
	u.mu.RLock()
	result := u.lastResult
	u.mu.RUnlock()

	if result != nil && result.Fiat != nil {
		return result.Fiat, nil
	}
	return u.store.ReadLatestFiat(ctx)
}
