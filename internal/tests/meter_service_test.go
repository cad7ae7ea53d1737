package tests

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"taximeter/internal/domain"
	"taximeter/internal/service"
)

// ──────────────────────────────────────────────
// METER SERVICE LIFECYCLE
// ──────────────────────────────────────────────

var serviceTariff = domain.Tariff{BaseFare: 2.5, PerKilometer: 1.5, PerMinute: 0.5}

func newMeterService(t *testing.T) (*service.MeterService, *FakeClock, *MockTelemetryStore, *MockLockStore) {
	t.Helper()

	clk := NewFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	telemetry := NewMockTelemetryStore()
	locks := NewMockLockStore()

	svc, err := service.NewMeterService("vehicle-1", "DH", serviceTariff, clk, telemetry, locks, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return svc, clk, telemetry, locks
}

func TestMeterService_RequiresVehicleID(t *testing.T) {
	t.Parallel()

	_, err := service.NewMeterService("", "DH", serviceTariff, nil, nil, nil, nil)
	if err != service.ErrInvalidVehicleID {
		t.Fatalf("expected ErrInvalidVehicleID, got %v", err)
	}
}

func TestMeterService_FullTripLifecycle(t *testing.T) {
	t.Parallel()

	svc, clk, _, _ := newMeterService(t)
	ctx := context.Background()

	status, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.State != domain.TripStateActive {
		t.Fatalf("expected ACTIVE, got %s", status.State)
	}
	if status.TripID == "" {
		t.Fatal("expected a trip id")
	}

	// ~1km east at the equator.
	if _, err := svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0.009}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.Advance(2 * time.Minute)
	svc.Tick(ctx)

	summary, err := svc.Stop(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil {
		t.Fatal("expected a trip summary")
	}
	if summary.TripID != status.TripID {
		t.Errorf("summary trip id %s does not match %s", summary.TripID, status.TripID)
	}
	if summary.ElapsedSeconds != 120 {
		t.Errorf("expected 120s, got %d", summary.ElapsedSeconds)
	}
	if summary.DistanceMeters < 995 || summary.DistanceMeters > 1005 {
		t.Errorf("expected ~1000m, got %f", summary.DistanceMeters)
	}
	if summary.Fare < 4.95 || summary.Fare > 5.05 {
		t.Errorf("expected fare ~5.0, got %f", summary.Fare)
	}
	if summary.Currency != "DH" {
		t.Errorf("expected currency DH, got %s", summary.Currency)
	}
}

func TestMeterService_StartIsIdempotentWhileActive(t *testing.T) {
	t.Parallel()

	svc, clk, _, _ := newMeterService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0})
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0.009})
	clk.Advance(30 * time.Second)
	svc.Tick(ctx)

	before := svc.Status().Snapshot

	second, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.TripID != first.TripID {
		t.Errorf("second start produced a new trip: %s vs %s", second.TripID, first.TripID)
	}
	if svc.Status().Snapshot != before {
		t.Errorf("second start reset accumulators: %+v vs %+v", svc.Status().Snapshot, before)
	}
}

func TestMeterService_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newMeterService(t)
	ctx := context.Background()

	svc.Start(ctx)
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0})
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0.009, Longitude: 0})

	first, err := svc.Stop(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.Stop(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("second stop should return the same retained summary")
	}
}

func TestMeterService_StopWithoutTripReturnsNoSummary(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newMeterService(t)

	summary, err := svc.Stop(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != nil {
		t.Errorf("expected no summary, got %+v", summary)
	}

	if _, err := svc.LastSummary(); err != service.ErrNoCompletedTrip {
		t.Errorf("expected ErrNoCompletedTrip, got %v", err)
	}
}

func TestMeterService_ResetDiscardsSummary(t *testing.T) {
	t.Parallel()

	svc, _, telemetry, _ := newMeterService(t)
	ctx := context.Background()

	svc.Start(ctx)
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0})
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 0, Longitude: 0.009})
	svc.Stop(ctx)

	status := svc.Reset(ctx)

	if status.State != domain.TripStateIdle {
		t.Errorf("expected IDLE, got %s", status.State)
	}
	if status.Snapshot.DistanceMeters != 0 || status.Snapshot.ElapsedSeconds != 0 || status.Snapshot.Fare != 2.5 {
		t.Errorf("unexpected snapshot after reset: %+v", status.Snapshot)
	}
	if _, err := svc.LastSummary(); err != service.ErrNoCompletedTrip {
		t.Errorf("expected ErrNoCompletedTrip after reset, got %v", err)
	}
	if telemetry.ClearCallCount == 0 {
		t.Error("expected telemetry to be cleared on reset")
	}

	snap, _ := telemetry.LastSnapshot(ctx, "vehicle-1")
	if snap != nil {
		t.Errorf("expected cleared live snapshot, got %+v", snap)
	}
}

func TestMeterService_TripLockHeldForTripDuration(t *testing.T) {
	t.Parallel()

	svc, _, _, locks := newMeterService(t)
	ctx := context.Background()

	svc.Start(ctx)
	if !locks.Held("vehicle-1") {
		t.Error("expected trip lock held while active")
	}

	svc.Stop(ctx)
	if locks.Held("vehicle-1") {
		t.Error("expected trip lock released after stop")
	}
}

func TestMeterService_StartFailsWhenLockHeldElsewhere(t *testing.T) {
	t.Parallel()

	svc, _, _, locks := newMeterService(t)
	ctx := context.Background()

	// Another meter instance holds the lock.
	locks.AcquireTripLock(ctx, "vehicle-1", time.Hour)

	_, err := svc.Start(ctx)
	if err != service.ErrMeterInUse {
		t.Fatalf("expected ErrMeterInUse, got %v", err)
	}
	if svc.Status().State != domain.TripStateIdle {
		t.Error("failed start should leave the meter idle")
	}
}

func TestMeterService_PublishesLiveTelemetry(t *testing.T) {
	t.Parallel()

	svc, clk, telemetry, _ := newMeterService(t)
	ctx := context.Background()

	svc.Start(ctx)
	svc.ObservePosition(ctx, domain.PositionFix{Latitude: 33.5731, Longitude: -7.5898, TimestampMs: 42})
	clk.Advance(10 * time.Second)
	svc.Tick(ctx)

	snap, err := telemetry.LastSnapshot(ctx, "vehicle-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap == nil {
		t.Fatal("expected a published snapshot")
	}
	if snap.State != string(domain.TripStateActive) {
		t.Errorf("expected ACTIVE, got %s", snap.State)
	}
	if snap.ElapsedSeconds != 10 {
		t.Errorf("expected 10s, got %d", snap.ElapsedSeconds)
	}

	fix, err := telemetry.LastFix(ctx, "vehicle-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fix == nil {
		t.Fatal("expected a published fix")
	}
	if fix.Latitude != 33.5731 || fix.TimestampMs != 42 {
		t.Errorf("unexpected published fix: %+v", fix)
	}
}

func TestMeterService_IdleFixesNotPublished(t *testing.T) {
	t.Parallel()

	svc, _, telemetry, _ := newMeterService(t)
	ctx := context.Background()

	// No trip running: the engine drops the fix, nothing is published.
	if _, err := svc.ObservePosition(ctx, domain.PositionFix{Latitude: 1, Longitude: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if telemetry.PublishFixCallCount != 0 {
		t.Error("idle fix should not be published")
	}
}

func TestMeterService_RunTicksUntilCancelled(t *testing.T) {
	t.Parallel()

	svc, clk, telemetry, _ := newMeterService(t)
	ctx, cancel := context.WithCancel(context.Background())

	svc.Start(ctx)
	clk.Advance(3 * time.Second)

	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx, time.Millisecond)
	}()

	// Wait for at least one tick to land.
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&telemetry.PublishSnapshotCallCount) < 2 {
		select {
		case <-deadline:
			t.Fatal("ticker never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if svc.Status().Snapshot.ElapsedSeconds != 3 {
		t.Errorf("expected 3s elapsed, got %d", svc.Status().Snapshot.ElapsedSeconds)
	}
}
