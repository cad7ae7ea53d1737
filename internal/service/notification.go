package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taximeter/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripStarted  NotificationType = "TRIP_STARTED"
	NotificationTripEnded    NotificationType = "TRIP_ENDED"
	NotificationReceiptReady NotificationType = "RECEIPT_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
// Actual push delivery (FCM/APNS, SMS) is an external collaborator;
// this implementation logs what would be sent.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripStarted notifies that metering has begun for a trip.
func (s *NotificationService) NotifyTripStarted(ctx context.Context, tripID, vehicleID string) error {
	s.send(ctx, Notification{
		Type:        NotificationTripStarted,
		RecipientID: vehicleID,
		Title:       "Trip Started",
		Message:     "Meter running.",
		Data: map[string]interface{}{
			"trip_id":    tripID,
			"vehicle_id": vehicleID,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyTripEnded notifies that a trip has ended with its final fare.
func (s *NotificationService) NotifyTripEnded(ctx context.Context, summary *domain.TripSummary) error {
	s.send(ctx, Notification{
		Type:        NotificationTripEnded,
		RecipientID: summary.VehicleID,
		Title:       "Trip Ended",
		Message: fmt.Sprintf("Fare: %s for %s over %s",
			FormatAmount(summary.Fare, summary.Currency),
			FormatDistance(summary.DistanceMeters),
			FormatDuration(summary.ElapsedSeconds)),
		Data: map[string]interface{}{
			"trip_id":         summary.TripID,
			"fare":            summary.Fare,
			"distance_meters": summary.DistanceMeters,
			"elapsed_seconds": summary.ElapsedSeconds,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyReceiptReady notifies that a receipt has been generated.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, receipt *Receipt) error {
	s.send(ctx, Notification{
		Type:        NotificationReceiptReady,
		RecipientID: receipt.VehicleID,
		Title:       "Receipt Ready",
		Message:     fmt.Sprintf("Your receipt for %s is ready", receipt.FareText),
		Data: map[string]interface{}{
			"receipt_id": receipt.ID,
			"trip_id":    receipt.TripID,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// send delivers a notification. In a real system this would fan out to
// push/SMS providers; here it is logged.
func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[notification] type=%s recipient=%s title=%q message=%q",
		n.Type, n.RecipientID, n.Title, n.Message)
}
