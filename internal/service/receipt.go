package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taximeter/internal/domain"
)

// ReceiptService renders trip summaries into receipts. Formatting is a
// presentation concern layered on top of the meter snapshot; the engine
// only guarantees correctly rounded numeric values.
type ReceiptService struct {
	notifier *NotificationService
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(notifier *NotificationService) *ReceiptService {
	return &ReceiptService{notifier: notifier}
}

// Receipt is the formatted view of a completed trip.
type Receipt struct {
	ID        string
	TripID    string
	VehicleID string
	IssuedAt  time.Time

	DistanceMeters float64
	ElapsedSeconds int64
	BaseFare       float64
	DistanceCharge float64
	TimeCharge     float64
	TotalFare      float64
	Currency       string

	DistanceText string // "1.23 km"
	DurationText string // "05:30"
	FareText     string // "15.50 DH"
}

// GenerateReceipt builds a receipt from a completed trip summary.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, summary *domain.TripSummary) (*Receipt, error) {
	if summary == nil {
		return nil, ErrNoCompletedTrip
	}

	receipt := &Receipt{
		ID:        uuid.New().String(),
		TripID:    summary.TripID,
		VehicleID: summary.VehicleID,
		IssuedAt:  time.Now(),

		DistanceMeters: summary.DistanceMeters,
		ElapsedSeconds: summary.ElapsedSeconds,
		BaseFare:       summary.Tariff.BaseFare,
		DistanceCharge: (summary.DistanceMeters / 1000.0) * summary.Tariff.PerKilometer,
		TimeCharge:     (float64(summary.ElapsedSeconds) / 60.0) * summary.Tariff.PerMinute,
		TotalFare:      summary.Fare,
		Currency:       summary.Currency,

		DistanceText: FormatDistance(summary.DistanceMeters),
		DurationText: FormatDuration(summary.ElapsedSeconds),
		FareText:     FormatAmount(summary.Fare, summary.Currency),
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyReceiptReady(ctx, receipt)
	}

	return receipt, nil
}

// FormatReceipt formats the receipt as a string (for email/print).
func (s *ReceiptService) FormatReceipt(receipt *Receipt) string {
	return `
=====================================
        TRIP RECEIPT
=====================================
Receipt ID: ` + receipt.ID + `
Trip ID: ` + receipt.TripID + `
Vehicle: ` + receipt.VehicleID + `
Date: ` + receipt.IssuedAt.Format("Jan 02, 2006 3:04 PM") + `

TRIP DETAILS
-------------------------------------
Distance:  ` + receipt.DistanceText + `
Duration:  ` + receipt.DurationText + `

FARE BREAKDOWN
-------------------------------------
Base Fare:       ` + FormatAmount(receipt.BaseFare, receipt.Currency) + `
Distance Charge: ` + FormatAmount(receipt.DistanceCharge, receipt.Currency) + `
Time Charge:     ` + FormatAmount(receipt.TimeCharge, receipt.Currency) + `
-------------------------------------
TOTAL:           ` + receipt.FareText + `

=====================================
     Thank you for riding with us!
=====================================
`
}

// FormatDistance renders meters as kilometers, e.g. "1.23 km".
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f km", meters/1000.0)
}

// FormatDuration renders seconds as "MM:SS", switching to "H:MM:SS"
// past one hour, e.g. "05:30".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatAmount renders a fare with its currency, e.g. "15.50 DH".
func FormatAmount(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
