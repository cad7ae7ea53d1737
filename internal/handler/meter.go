package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taximeter/internal/domain"
	"taximeter/internal/service"
)

// MeterHandler handles HTTP requests for the meter.
type MeterHandler struct {
	meterService   *service.MeterService
	receiptService *service.ReceiptService
}

// NewMeterHandler creates a new MeterHandler.
func NewMeterHandler(meterService *service.MeterService, receiptService *service.ReceiptService) *MeterHandler {
	return &MeterHandler{
		meterService:   meterService,
		receiptService: receiptService,
	}
}

// StatusResponse is the HTTP representation of the meter state.
type StatusResponse struct {
	TripID         string  `json:"trip_id,omitempty"`
	VehicleID      string  `json:"vehicle_id"`
	State          string  `json:"state"`
	StartedAt      string  `json:"started_at,omitempty"`
	DistanceMeters float64 `json:"distance_meters"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	Fare           float64 `json:"fare"`
}

func statusResponse(status *service.TripStatus) StatusResponse {
	resp := StatusResponse{
		TripID:         status.TripID,
		VehicleID:      status.VehicleID,
		State:          string(status.State),
		DistanceMeters: status.Snapshot.DistanceMeters,
		ElapsedSeconds: status.Snapshot.ElapsedSeconds,
		Fare:           status.Snapshot.Fare,
	}
	if !status.StartedAt.IsZero() {
		resp.StartedAt = status.StartedAt.Format(time.RFC3339)
	}
	return resp
}

// Start handles POST /v1/meter/start
func (h *MeterHandler) Start(c *gin.Context) {
	status, err := h.meterService.Start(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, statusResponse(status))
}

// PositionRequest is the HTTP request for delivering a position fix.
type PositionRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimestampMs int64   `json:"timestamp_ms"`
}

// Position handles POST /v1/meter/position
func (h *MeterHandler) Position(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, err := h.meterService.ObservePosition(c.Request.Context(), domain.PositionFix{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TimestampMs: req.TimestampMs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, statusResponse(status))
}

// StopResponse is the HTTP response for stopping the meter.
type StopResponse struct {
	State   string           `json:"state"`
	Summary *SummaryResponse `json:"summary,omitempty"`
}

// SummaryResponse is the HTTP representation of a completed trip.
type SummaryResponse struct {
	TripID         string  `json:"trip_id"`
	VehicleID      string  `json:"vehicle_id"`
	StartedAt      string  `json:"started_at"`
	EndedAt        string  `json:"ended_at"`
	DistanceMeters float64 `json:"distance_meters"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	Fare           float64 `json:"fare"`
	Currency       string  `json:"currency"`
}

func summaryResponse(summary *domain.TripSummary) *SummaryResponse {
	return &SummaryResponse{
		TripID:         summary.TripID,
		VehicleID:      summary.VehicleID,
		StartedAt:      summary.StartedAt.Format(time.RFC3339),
		EndedAt:        summary.EndedAt.Format(time.RFC3339),
		DistanceMeters: summary.DistanceMeters,
		ElapsedSeconds: summary.ElapsedSeconds,
		Fare:           summary.Fare,
		Currency:       summary.Currency,
	}
}

// Stop handles POST /v1/meter/stop
func (h *MeterHandler) Stop(c *gin.Context) {
	summary, err := h.meterService.Stop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := StopResponse{State: string(domain.TripStateIdle)}
	if summary != nil {
		resp.Summary = summaryResponse(summary)
	}

	respondJSON(c, http.StatusOK, resp)
}

// Reset handles POST /v1/meter/reset
func (h *MeterHandler) Reset(c *gin.Context) {
	status := h.meterService.Reset(c.Request.Context())

	respondJSON(c, http.StatusOK, statusResponse(status))
}

// Snapshot handles GET /v1/meter/snapshot
func (h *MeterHandler) Snapshot(c *gin.Context) {
	respondJSON(c, http.StatusOK, statusResponse(h.meterService.Status()))
}

// ReceiptResponse is the HTTP representation of a trip receipt.
type ReceiptResponse struct {
	ReceiptID      string  `json:"receipt_id"`
	TripID         string  `json:"trip_id"`
	VehicleID      string  `json:"vehicle_id"`
	IssuedAt       string  `json:"issued_at"`
	BaseFare       float64 `json:"base_fare"`
	DistanceCharge float64 `json:"distance_charge"`
	TimeCharge     float64 `json:"time_charge"`
	TotalFare      float64 `json:"total_fare"`
	Currency       string  `json:"currency"`
	Distance       string  `json:"distance"`
	Duration       string  `json:"duration"`
	Total          string  `json:"total"`
	Printable      string  `json:"printable"`
}

// Receipt handles GET /v1/meter/receipt
func (h *MeterHandler) Receipt(c *gin.Context) {
	summary, err := h.meterService.LastSummary()
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.receiptService.GenerateReceipt(c.Request.Context(), summary)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ReceiptResponse{
		ReceiptID:      receipt.ID,
		TripID:         receipt.TripID,
		VehicleID:      receipt.VehicleID,
		IssuedAt:       receipt.IssuedAt.Format(time.RFC3339),
		BaseFare:       receipt.BaseFare,
		DistanceCharge: receipt.DistanceCharge,
		TimeCharge:     receipt.TimeCharge,
		TotalFare:      receipt.TotalFare,
		Currency:       receipt.Currency,
		Distance:       receipt.DistanceText,
		Duration:       receipt.DurationText,
		Total:          receipt.FareText,
		Printable:      h.receiptService.FormatReceipt(receipt),
	})
}
