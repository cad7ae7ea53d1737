package service

import "errors"

var (
	// ErrInvalidVehicleID is returned when the vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrMeterInUse is returned when another meter instance holds the
	// trip lock for this vehicle.
	ErrMeterInUse = errors.New("meter already in use for this vehicle")

	// ErrNoCompletedTrip is returned when a receipt is requested but no
	// trip summary is available.
	ErrNoCompletedTrip = errors.New("no completed trip")

	// ErrUnknownTariffPlan is returned when the configured tariff plan
	// does not exist in the catalog.
	ErrUnknownTariffPlan = errors.New("unknown tariff plan")

	// ErrInvalidTariffPlan is returned when a tariff plan submitted to
	// the catalog has no name.
	ErrInvalidTariffPlan = errors.New("invalid tariff plan")
)
