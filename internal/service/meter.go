package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taximeter/internal/domain"
	"taximeter/internal/meter"
	"taximeter/internal/redis"
)

const tripLockTTL = 12 * time.Hour

// MeterService drives the metering engine for a single vehicle. It owns
// the mutex that serializes the engine's mutating operations; the
// engine itself holds no locks and assumes one writer at a time.
type MeterService struct {
	mu sync.Mutex

	engine    *meter.Engine
	clk       meter.Clock
	vehicleID string
	currency  string
	tariff    domain.Tariff

	telemetry redis.TelemetryStoreInterface
	locks     redis.LockStoreInterface
	notifier  *NotificationService

	tripID      string
	lastSummary *domain.TripSummary
}

// NewMeterService creates a new MeterService. telemetry, locks and
// notifier may be nil; the service then skips those collaborators.
func NewMeterService(
	vehicleID string,
	currency string,
	tariff domain.Tariff,
	clk meter.Clock,
	telemetry redis.TelemetryStoreInterface,
	locks redis.LockStoreInterface,
	notifier *NotificationService,
) (*MeterService, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if clk == nil {
		clk = meter.SystemClock()
	}

	engine, err := meter.NewEngine(tariff, clk)
	if err != nil {
		return nil, err
	}

	return &MeterService{
		engine:    engine,
		clk:       clk,
		vehicleID: vehicleID,
		currency:  currency,
		tariff:    tariff,
		telemetry: telemetry,
		locks:     locks,
		notifier:  notifier,
	}, nil
}

// TripStatus is the externally visible meter state.
type TripStatus struct {
	TripID    string
	VehicleID string
	State     domain.TripState
	StartedAt time.Time
	Snapshot  domain.MeterSnapshot
}

// Start begins a new trip. Starting while a trip is active is a no-op
// that returns the running trip's status, so a duplicate lifecycle
// callback can never reset accumulators.
func (s *MeterService) Start(ctx context.Context) (*TripStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() == domain.TripStateActive {
		return s.status(), nil
	}

	if s.locks != nil {
		locked, err := s.locks.AcquireTripLock(ctx, s.vehicleID, tripLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrMeterInUse
		}
	}

	s.engine.Start()
	s.tripID = uuid.New().String()
	s.lastSummary = nil

	s.publishSnapshot(ctx)

	if s.notifier != nil {
		_ = s.notifier.NotifyTripStarted(ctx, s.tripID, s.vehicleID)
	}

	return s.status(), nil
}

// ObservePosition feeds one position fix into the engine and publishes
// the refreshed snapshot. Fixes delivered while no trip is active are
// dropped by the engine without error.
func (s *MeterService) ObservePosition(ctx context.Context, fix domain.PositionFix) (*TripStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.ObservePosition(fix); err != nil {
		return nil, err
	}

	if s.engine.State() == domain.TripStateActive {
		s.publishFix(ctx, fix)
		s.publishSnapshot(ctx)
	}

	return s.status(), nil
}

// Tick advances elapsed time against the wall clock and publishes the
// refreshed snapshot. No-op while idle.
func (s *MeterService) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() != domain.TripStateActive {
		return
	}

	s.engine.Tick(s.clk.Now())
	s.publishSnapshot(ctx)
}

// Run drives the engine's time accumulation at the given interval until
// the context is cancelled. Meant to be run in its own goroutine.
func (s *MeterService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Stop ends the active trip and freezes its summary for the receipt.
// Stopping an idle meter is a no-op that returns the retained summary,
// which is nil when no trip has completed.
func (s *MeterService) Stop(ctx context.Context) (*domain.TripSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engine.Stop() {
		return s.lastSummary, nil
	}

	snap := s.engine.Snapshot()
	summary := &domain.TripSummary{
		TripID:         s.tripID,
		VehicleID:      s.vehicleID,
		StartedAt:      s.engine.StartedAt(),
		EndedAt:        s.clk.Now(),
		DistanceMeters: snap.DistanceMeters,
		ElapsedSeconds: snap.ElapsedSeconds,
		Fare:           snap.Fare,
		Currency:       s.currency,
		Tariff:         s.tariff,
	}
	s.lastSummary = summary

	s.publishSnapshot(ctx)
	s.releaseLock(ctx)

	if s.notifier != nil {
		_ = s.notifier.NotifyTripEnded(ctx, summary)
	}

	return summary, nil
}

// Reset discards any retained summary and returns the meter to a clean
// idle state, regardless of the current state.
func (s *MeterService) Reset(ctx context.Context) *TripStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.tripID = ""
	s.lastSummary = nil

	s.releaseLock(ctx)
	if s.telemetry != nil {
		_ = s.telemetry.Clear(ctx, s.vehicleID)
	}

	return s.status()
}

// Status returns the current meter state without side effects.
func (s *MeterService) Status() *TripStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status()
}

// LastSummary returns the summary of the last completed trip.
func (s *MeterService) LastSummary() (*domain.TripSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSummary == nil {
		return nil, ErrNoCompletedTrip
	}
	return s.lastSummary, nil
}

// status builds a TripStatus. Callers must hold s.mu.
func (s *MeterService) status() *TripStatus {
	return &TripStatus{
		TripID:    s.tripID,
		VehicleID: s.vehicleID,
		State:     s.engine.State(),
		StartedAt: s.engine.StartedAt(),
		Snapshot:  s.engine.Snapshot(),
	}
}

// publishSnapshot pushes the current snapshot to the telemetry store
// (fire and forget). Callers must hold s.mu.
func (s *MeterService) publishSnapshot(ctx context.Context) {
	if s.telemetry == nil {
		return
	}

	snap := s.engine.Snapshot()
	_ = s.telemetry.PublishSnapshot(ctx, &redis.LiveSnapshot{
		VehicleID:      s.vehicleID,
		TripID:         s.tripID,
		State:          string(s.engine.State()),
		DistanceMeters: snap.DistanceMeters,
		ElapsedSeconds: snap.ElapsedSeconds,
		Fare:           snap.Fare,
		UpdatedAt:      s.clk.Now().UnixMilli(),
	})
}

// publishFix pushes the latest fix to the telemetry store (fire and
// forget). Callers must hold s.mu.
func (s *MeterService) publishFix(ctx context.Context, fix domain.PositionFix) {
	if s.telemetry == nil {
		return
	}

	_ = s.telemetry.PublishFix(ctx, &redis.LiveFix{
		VehicleID:   s.vehicleID,
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		TimestampMs: fix.TimestampMs,
	})
}

func (s *MeterService) releaseLock(ctx context.Context) {
	if s.locks == nil {
		return
	}
	_ = s.locks.ReleaseTripLock(ctx, s.vehicleID)
}
