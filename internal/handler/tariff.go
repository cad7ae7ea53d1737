package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taximeter/internal/domain"
	"taximeter/internal/service"
)

// TariffHandler handles HTTP requests for tariff plans.
type TariffHandler struct {
	tariffService *service.TariffService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(tariffService *service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

// TariffPlanResponse is the HTTP representation of a tariff plan.
type TariffPlanResponse struct {
	Name         string  `json:"name"`
	Currency     string  `json:"currency"`
	BaseFare     float64 `json:"base_fare"`
	PerKilometer float64 `json:"per_kilometer"`
	PerMinute    float64 `json:"per_minute"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

func tariffPlanResponse(plan *domain.TariffPlan) TariffPlanResponse {
	resp := TariffPlanResponse{
		Name:         plan.Name,
		Currency:     plan.Currency,
		BaseFare:     plan.BaseFare,
		PerKilometer: plan.PerKilometer,
		PerMinute:    plan.PerMinute,
	}
	if !plan.UpdatedAt.IsZero() {
		resp.UpdatedAt = plan.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// TariffPlanRequest is the payload for creating or updating a tariff plan.
type TariffPlanRequest struct {
	Name         string  `json:"name"`
	Currency     string  `json:"currency"`
	BaseFare     float64 `json:"base_fare"`
	PerKilometer float64 `json:"per_kilometer"`
	PerMinute    float64 `json:"per_minute"`
}

func (r *TariffPlanRequest) toPlan() *domain.TariffPlan {
	return &domain.TariffPlan{
		Name:         r.Name,
		Currency:     r.Currency,
		BaseFare:     r.BaseFare,
		PerKilometer: r.PerKilometer,
		PerMinute:    r.PerMinute,
	}
}

// Get handles GET /v1/tariffs/:name
func (h *TariffHandler) Get(c *gin.Context) {
	plan, err := h.tariffService.GetPlan(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tariffPlanResponse(plan))
}

// GetAll handles GET /v1/tariffs
func (h *TariffHandler) GetAll(c *gin.Context) {
	plans, err := h.tariffService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TariffPlanResponse, 0, len(plans))
	for _, plan := range plans {
		response = append(response, tariffPlanResponse(plan))
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /v1/tariffs
func (h *TariffHandler) Create(c *gin.Context) {
	var req TariffPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan := req.toPlan()
	if err := h.tariffService.CreatePlan(c.Request.Context(), plan); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tariffPlanResponse(plan))
}

// Update handles PUT /v1/tariffs/:name
func (h *TariffHandler) Update(c *gin.Context) {
	var req TariffPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// The path parameter names the plan; a body name is ignored.
	req.Name = c.Param("name")

	plan := req.toPlan()
	if err := h.tariffService.UpdatePlan(c.Request.Context(), plan); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tariffPlanResponse(plan))
}
