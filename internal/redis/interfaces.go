package redis

import (
	"context"
	"time"
)

// TelemetryStoreInterface defines the interface for live meter telemetry.
type TelemetryStoreInterface interface {
	PublishSnapshot(ctx context.Context, snap *LiveSnapshot) error
	LastSnapshot(ctx context.Context, vehicleID string) (*LiveSnapshot, error)
	PublishFix(ctx context.Context, fix *LiveFix) error
	LastFix(ctx context.Context, vehicleID string) (*LiveFix, error)
	Clear(ctx context.Context, vehicleID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireTripLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseTripLock(ctx context.Context, vehicleID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ TelemetryStoreInterface = (*TelemetryStore)(nil)
	_ LockStoreInterface      = (*LockStore)(nil)
)
