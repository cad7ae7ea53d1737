package domain

import "time"

// TripState represents the current state of the metered trip.
type TripState string

const (
	TripStateIdle   TripState = "IDLE"
	TripStateActive TripState = "ACTIVE"
)

// MeterSnapshot is the read-only view of the meter accumulators.
// It is derived as a whole on every update; the three fields are
// never mutated independently of each other.
type MeterSnapshot struct {
	DistanceMeters float64
	ElapsedSeconds int64
	Fare           float64
}

// TripSummary is the frozen result of a completed trip, retained
// after Stop so a receipt can be rendered.
type TripSummary struct {
	TripID         string
	VehicleID      string
	StartedAt      time.Time
	EndedAt        time.Time
	DistanceMeters float64
	ElapsedSeconds int64
	Fare           float64
	Currency       string
	Tariff         Tariff
}
