package repository

import (
	"context"

	"taximeter/internal/domain"
)

// TariffRepository defines the persistence operations for tariff plans.
type TariffRepository interface {
	// Create persists a new tariff plan.
	Create(ctx context.Context, plan *domain.TariffPlan) error

	// GetByName retrieves a tariff plan by its name.
	GetByName(ctx context.Context, name string) (*domain.TariffPlan, error)

	// GetAll retrieves all tariff plans.
	GetAll(ctx context.Context) ([]*domain.TariffPlan, error)

	// Update updates an existing tariff plan.
	Update(ctx context.Context, plan *domain.TariffPlan) error
}
