package domain

import (
	"errors"
	"math"
	"time"
)

// Tariff is the immutable fare configuration for a trip.
// BaseFare is the fare floor: the computed fare never drops below it.
type Tariff struct {
	BaseFare     float64
	PerKilometer float64
	PerMinute    float64
}

// ErrInvalidTariff is returned when a tariff carries a negative or
// non-finite rate.
var ErrInvalidTariff = errors.New("tariff rates must be finite and non-negative")

// Validate checks that all tariff components are finite and non-negative.
func (t Tariff) Validate() error {
	for _, rate := range []float64{t.BaseFare, t.PerKilometer, t.PerMinute} {
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return ErrInvalidTariff
		}
	}
	return nil
}

// TariffPlan is a named tariff schedule (e.g. DAY, NIGHT, AIRPORT)
// as stored in the tariff catalog.
type TariffPlan struct {
	Name         string
	Currency     string
	BaseFare     float64
	PerKilometer float64
	PerMinute    float64
	UpdatedAt    time.Time
}

// Tariff returns the fare configuration of the plan.
func (p *TariffPlan) Tariff() Tariff {
	return Tariff{
		BaseFare:     p.BaseFare,
		PerKilometer: p.PerKilometer,
		PerMinute:    p.PerMinute,
	}
}
