// Package meter implements the ride-metering engine: a state machine
// that accumulates traveled distance from a stream of position fixes,
// accumulates elapsed time from a clock, and recomputes the fare on
// every update.
//
// The engine performs no I/O and holds no locks. It is driven by two
// external event sources (a position stream and a periodic timer);
// callers delivering events from multiple goroutines must serialize
// calls themselves.
package meter

import (
	"math"
	"time"

	"taximeter/internal/domain"
)

// Engine owns all trip state for exactly one trip at a time.
type Engine struct {
	tariff domain.Tariff
	clk    Clock

	state     domain.TripState
	startedAt time.Time
	lastFix   *domain.PositionFix

	distanceM float64
	elapsedS  int64
	fare      float64
}

// NewEngine creates an idle engine with the given tariff.
// A nil clock defaults to SystemClock.
func NewEngine(tariff domain.Tariff, clk Clock) (*Engine, error) {
	if err := tariff.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = SystemClock()
	}
	return &Engine{
		tariff: tariff,
		clk:    clk,
		state:  domain.TripStateIdle,
		fare:   roundFare(tariff.BaseFare),
	}, nil
}

// Start transitions Idle to Active, zeroing all accumulators and
// recording the start timestamp. Calling Start while a trip is in
// progress is a no-op so a double-tap can never reset the trip.
// It reports whether a new trip was started.
func (e *Engine) Start() bool {
	if e.state == domain.TripStateActive {
		return false
	}
	e.state = domain.TripStateActive
	e.startedAt = e.clk.Now()
	e.lastFix = nil
	e.distanceM = 0
	e.elapsedS = 0
	e.fare = roundFare(e.tariff.BaseFare)
	return true
}

// Stop transitions Active to Idle. Accumulated distance, elapsed time
// and fare are retained so the final summary stays readable; the last
// fix is cleared so a stale fix cannot extend distance on a restart.
// Stop is idempotent: stopping an idle engine changes nothing.
// It reports whether a running trip was stopped.
func (e *Engine) Stop() bool {
	if e.state != domain.TripStateActive {
		return false
	}
	e.state = domain.TripStateIdle
	e.lastFix = nil
	return true
}

// Reset forces Idle and zeroes everything, discarding any retained
// summary. Valid from any state.
func (e *Engine) Reset() {
	e.state = domain.TripStateIdle
	e.startedAt = time.Time{}
	e.lastFix = nil
	e.distanceM = 0
	e.elapsedS = 0
	e.fare = roundFare(e.tariff.BaseFare)
}

// ObservePosition folds one position fix into the running distance.
// While idle it is a defined no-op: GPS noise received between trips
// must never be accumulated. The delta from the previous fix is added
// unconditionally; jitter filtering is the position source's concern.
func (e *Engine) ObservePosition(fix domain.PositionFix) error {
	if !isValidLatitude(fix.Latitude) || !isValidLongitude(fix.Longitude) {
		return ErrInvalidFix
	}

	if e.state != domain.TripStateActive {
		return nil
	}

	if e.lastFix != nil {
		e.distanceM += haversineMeters(
			e.lastFix.Latitude, e.lastFix.Longitude,
			fix.Latitude, fix.Longitude,
		)
	}

	e.lastFix = &fix
	e.fare = e.computeFare()
	return nil
}

// Tick recomputes elapsed time against the absolute start timestamp.
// Elapsed time is a pure function of now and startedAt, never of how
// many ticks fired, so irregular tick cadence cannot drift the meter.
// While idle it is a defined no-op.
func (e *Engine) Tick(now time.Time) {
	if e.state != domain.TripStateActive {
		return
	}

	elapsed := now.Sub(e.startedAt).Milliseconds() / 1000
	if elapsed < 0 {
		elapsed = 0
	}
	e.elapsedS = elapsed
	e.fare = e.computeFare()
}

// Snapshot returns the current accumulator values without side effects.
func (e *Engine) Snapshot() domain.MeterSnapshot {
	return domain.MeterSnapshot{
		DistanceMeters: e.distanceM,
		ElapsedSeconds: e.elapsedS,
		Fare:           e.fare,
	}
}

// State returns the current trip state.
func (e *Engine) State() domain.TripState {
	return e.state
}

// StartedAt returns the start timestamp of the current or last trip.
// Zero when the engine has been reset or never started.
func (e *Engine) StartedAt() time.Time {
	return e.startedAt
}

// computeFare recomputes the fare in full from the two accumulators.
// It is never adjusted incrementally, so the fare is always exactly
// reproducible from (distance, elapsed, tariff).
func (e *Engine) computeFare() float64 {
	fare := e.tariff.BaseFare +
		(e.distanceM/1000.0)*e.tariff.PerKilometer +
		(float64(e.elapsedS)/60.0)*e.tariff.PerMinute
	return roundFare(fare)
}

// roundFare rounds to currency precision (2 decimals). Ties round half
// away from zero: 12.345 becomes 12.35.
func roundFare(fare float64) float64 {
	return math.Round(fare*100) / 100
}
