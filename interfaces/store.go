package interfaces

import (
	"context"
	"time"
)

// SnapshotKind selects the crypto or fiat history collection
type SnapshotKind string

const (
	SnapshotCrypto SnapshotKind = "crypto"
	SnapshotFiat   SnapshotKind = "fiat"
)

//go:generate mockgen -destination=mocks/store.go . IRatesStore,ISnapshotStore,IAlertStateStore

// IRatesStore persists the outputs of an update run. Implementations must be
// no-ops that log and return nil when no backend is configured.
type IRatesStore interface {
	InitStore(ctx context.Context) error
	WriteLatest(ctx context.Context, payload *LatestPayload) error
	WriteSnapshot(ctx context.Context, payload *SnapshotPayload, date time.Time) error
	WriteLatestFiat(ctx context.Context, payload *FiatPayload) error
	WriteFiatSnapshot(ctx context.Context, payload *FiatPayload, date time.Time) error
	WriteMonitoringLog(ctx context.Context, entry MonitoringEntry) error
	// ReadLatest returns nil without error when nothing was written yet
	ReadLatest(ctx context.Context) (*LatestPayload, error)
	ReadLatestFiat(ctx context.Context) (*FiatPayload, error)
}

// ISnapshotStore lists and removes dated history records
type ISnapshotStore interface {
	ListSnapshotIDs(ctx context.Context, kind SnapshotKind) ([]string, error)
	DeleteSnapshot(ctx context.Context, kind SnapshotKind, id string) error
}

// IAlertStateStore keeps AlertState per key
type IAlertStateStore interface {
	// GetAlertState returns nil without error for unknown keys
	GetAlertState(ctx context.Context, key string) (*AlertState, error)
	SetAlertState(ctx context.Context, key string, state AlertState) error
}
