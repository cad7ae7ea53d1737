package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"taximeter/internal/domain"
)

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		meters float64
		want   string
	}{
		{1234.5, "1.23 km"},
		{0, "0.00 km"},
		{850, "0.85 km"},
		{10000, "10.00 km"},
	}

	for _, tc := range cases {
		if got := FormatDistance(tc.meters); got != tc.want {
			t.Errorf("FormatDistance(%f) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		seconds int64
		want    string
	}{
		{330, "05:30"},
		{0, "00:00"},
		{59, "00:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "00:00"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	if got := FormatAmount(15.5, "DH"); got != "15.50 DH" {
		t.Errorf("FormatAmount = %q, want %q", got, "15.50 DH")
	}
}

func TestGenerateReceipt(t *testing.T) {
	t.Parallel()

	svc := NewReceiptService(nil)

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	summary := &domain.TripSummary{
		TripID:         "trip-1",
		VehicleID:      "vehicle-1",
		StartedAt:      start,
		EndedAt:        start.Add(330 * time.Second),
		DistanceMeters: 1234.5,
		ElapsedSeconds: 330,
		Fare:           7.11,
		Currency:       "DH",
		Tariff:         domain.Tariff{BaseFare: 2.5, PerKilometer: 1.5, PerMinute: 0.5},
	}

	receipt, err := svc.GenerateReceipt(context.Background(), summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.ID == "" {
		t.Error("expected a receipt id")
	}
	if receipt.TripID != "trip-1" {
		t.Errorf("unexpected trip id %s", receipt.TripID)
	}
	if receipt.DistanceText != "1.23 km" {
		t.Errorf("unexpected distance text %q", receipt.DistanceText)
	}
	if receipt.DurationText != "05:30" {
		t.Errorf("unexpected duration text %q", receipt.DurationText)
	}
	if receipt.FareText != "7.11 DH" {
		t.Errorf("unexpected fare text %q", receipt.FareText)
	}
	if receipt.TotalFare != summary.Fare {
		t.Errorf("total %f does not match summary fare %f", receipt.TotalFare, summary.Fare)
	}

	printable := svc.FormatReceipt(receipt)
	for _, want := range []string{"trip-1", "1.23 km", "05:30", "7.11 DH", "Base Fare"} {
		if !strings.Contains(printable, want) {
			t.Errorf("printable receipt missing %q", want)
		}
	}
}

func TestGenerateReceipt_NilSummary(t *testing.T) {
	t.Parallel()

	svc := NewReceiptService(nil)

	if _, err := svc.GenerateReceipt(context.Background(), nil); err != ErrNoCompletedTrip {
		t.Fatalf("expected ErrNoCompletedTrip, got %v", err)
	}
}
