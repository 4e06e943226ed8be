package cleanup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
	"github.com/status-im/market-rates/metrics"
	"github.com/status-im/market-rates/store"
)

// Result counts snapshots per kind
type Result struct {
	Deleted map[interfaces.SnapshotKind][]string
	// Expired lists what would be deleted in dry-run mode
	Expired map[interfaces.SnapshotKind][]string
}

// Cleaner removes dated history records older than the retention window
type Cleaner struct {
	retention     time.Duration
	store         interfaces.ISnapshotStore
	metricsWriter *metrics.MetricsWriter
	now           func() time.Time
}

func NewCleaner(cfg *config.Config, snapshots interfaces.ISnapshotStore) *Cleaner {
	return &Cleaner{
		retention:     cfg.Cleanup.Retention(),
		store:         snapshots,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceCleanup),
		now:           time.Now,
	}
}

// Run deletes expired crypto and fiat snapshots. With dryRun it only lists them.
func (c *Cleaner) Run(ctx context.Context, dryRun bool) (*Result, error) {
	start := c.now()
	cutoff := start.UTC().Add(-c.retention)
	result := &Result{
		Deleted: make(map[interfaces.SnapshotKind][]string),
		Expired: make(map[interfaces.SnapshotKind][]string),
	}

	var err error
	for _, kind := range []interfaces.SnapshotKind{interfaces.SnapshotCrypto, interfaces.SnapshotFiat} {
		if err = c.cleanKind(ctx, kind, cutoff, dryRun, result); err != nil {
			break
		}
	}

	status := string(interfaces.StatusOK)
	if err != nil {
		status = string(interfaces.StatusError)
	}
	c.metricsWriter.RecordRun(c.now().Sub(start), status)
	return result, err
}

func (c *Cleaner) cleanKind(ctx context.Context, kind interfaces.SnapshotKind, cutoff time.Time, dryRun bool, result *Result) error {
	ids, err := c.store.ListSnapshotIDs(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list %s snapshots: %w", kind, err)
	}

	for _, id := range ids {
		day, ok := store.ParseSnapshotID(id)
		if !ok || !day.Before(cutoff) {
			continue
		}
		result.Expired[kind] = append(result.Expired[kind], id)
		if dryRun {
			log.Printf("Cleanup: [dry-run] would delete %s snapshot %s", kind, id)
			continue
		}
		if err := c.store.DeleteSnapshot(ctx, kind, id); err != nil {
			return fmt.Errorf("failed to delete %s snapshot %s: %w", kind, id, err)
		}
		result.Deleted[kind] = append(result.Deleted[kind], id)
	}

	log.Printf("Cleanup: %s deleted=%d expired=%d older than %s", kind, len(result.Deleted[kind]), len(result.Expired[kind]), cutoff.Format(time.DateOnly))
	return nil
}
