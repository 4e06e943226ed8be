package cleanup

import (
	"context"
	"log"
	"sync"

	"github.com/status-im/market-rates/events"
)

// IUpdateSource announces successful rate updates
type IUpdateSource interface {
	SubscribeOnUpdate() events.ISubscription
}

// Watcher runs the cleaner after the first successful update of each UTC day
// while the service is running.
type Watcher struct {
	cleaner *Cleaner
	source  IUpdateSource
	dryRun  bool

	mu      sync.Mutex
	lastDay string
	sub     events.ISubscription
}

func NewWatcher(cleaner *Cleaner, source IUpdateSource, dryRun bool) *Watcher {
	return &Watcher{
		cleaner: cleaner,
		source:  source,
		dryRun:  dryRun,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	w.sub = w.source.SubscribeOnUpdate().Watch(ctx, func() {
		w.runDaily(ctx)
	})
	return nil
}

func (w *Watcher) Stop() {
	if w.sub != nil {
		w.sub.Cancel()
	}
}

func (w *Watcher) runDaily(ctx context.Context) {
	day := w.cleaner.now().UTC().Format("2006-01-02")

	w.mu.Lock()
	if day == w.lastDay {
		w.mu.Unlock()
		return
	}
	w.lastDay = day
	w.mu.Unlock()

	if _, err := w.cleaner.Run(ctx, w.dryRun); err != nil {
		log.Printf("Cleanup: scheduled run failed: %v", err)
	}
}
