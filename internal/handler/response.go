package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taximeter/internal/domain"
	"taximeter/internal/meter"
	"taximeter/internal/repository"
	"taximeter/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Server-side failures are recorded on the gin context so instrumentation
// middleware can pick them up; expected client errors are not.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrUnknownTariffPlan),
		errors.Is(err, service.ErrNoCompletedTrip):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, meter.ErrInvalidFix),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidTariffPlan),
		errors.Is(err, domain.ErrInvalidTariff):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrMeterInUse):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
