package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes
const (
	snapshotKeyPrefix = "meter:snapshot:"
	fixKeyPrefix      = "meter:fix:"
)

// Live data expires quickly: a snapshot older than a few display
// refreshes is stale and should vanish rather than mislead.
const (
	SnapshotTTL = 30 * time.Second
	FixTTL      = 30 * time.Second
)

// LiveSnapshot is the meter state published for the presentation layer.
type LiveSnapshot struct {
	VehicleID      string  `json:"vehicle_id"`
	TripID         string  `json:"trip_id,omitempty"`
	State          string  `json:"state"`
	DistanceMeters float64 `json:"distance_meters"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	Fare           float64 `json:"fare"`
	UpdatedAt      int64   `json:"updated_at_ms"`
}

// LiveFix is the most recent position fix published for the presentation layer.
type LiveFix struct {
	VehicleID   string  `json:"vehicle_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimestampMs int64   `json:"timestamp_ms,omitempty"`
}

// TelemetryStore publishes live meter state to Redis under short-TTL
// keys so displays can poll it without touching the engine.
type TelemetryStore struct {
	client *redis.Client
}

// NewTelemetryStore creates a new TelemetryStore.
func NewTelemetryStore(client *redis.Client) *TelemetryStore {
	return &TelemetryStore{client: client}
}

// PublishSnapshot stores the latest meter snapshot for a vehicle.
func (s *TelemetryStore) PublishSnapshot(ctx context.Context, snap *LiveSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, snapshotKeyPrefix+snap.VehicleID, data, SnapshotTTL).Err()
}

// LastSnapshot retrieves the latest published snapshot for a vehicle.
// Returns nil without error when nothing has been published recently.
func (s *TelemetryStore) LastSnapshot(ctx context.Context, vehicleID string) (*LiveSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+vehicleID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var snap LiveSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// PublishFix stores the most recent position fix for a vehicle.
func (s *TelemetryStore) PublishFix(ctx context.Context, fix *LiveFix) error {
	data, err := json.Marshal(fix)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, fixKeyPrefix+fix.VehicleID, data, FixTTL).Err()
}

// LastFix retrieves the most recent published fix for a vehicle.
// Returns nil without error when nothing has been published recently.
func (s *TelemetryStore) LastFix(ctx context.Context, vehicleID string) (*LiveFix, error) {
	data, err := s.client.Get(ctx, fixKeyPrefix+vehicleID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var fix LiveFix
	if err := json.Unmarshal(data, &fix); err != nil {
		return nil, err
	}
	return &fix, nil
}

// Clear removes the published snapshot and fix for a vehicle.
func (s *TelemetryStore) Clear(ctx context.Context, vehicleID string) error {
	return s.client.Del(ctx, snapshotKeyPrefix+vehicleID, fixKeyPrefix+vehicleID).Err()
}
