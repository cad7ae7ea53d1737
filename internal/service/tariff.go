package service

import (
	"context"
	"errors"
	"log"

	"taximeter/internal/domain"
	"taximeter/internal/repository"
)

// TariffService resolves tariff plans from the catalog.
type TariffService struct {
	tariffRepo repository.TariffRepository
}

// NewTariffService creates a new TariffService.
func NewTariffService(tariffRepo repository.TariffRepository) *TariffService {
	return &TariffService{tariffRepo: tariffRepo}
}

// GetPlan retrieves a tariff plan by name.
func (s *TariffService) GetPlan(ctx context.Context, name string) (*domain.TariffPlan, error) {
	if name == "" {
		return nil, ErrUnknownTariffPlan
	}

	plan, err := s.tariffRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownTariffPlan
		}
		return nil, err
	}

	return plan, nil
}

// ListPlans retrieves all tariff plans.
func (s *TariffService) ListPlans(ctx context.Context) ([]*domain.TariffPlan, error) {
	return s.tariffRepo.GetAll(ctx)
}

// CreatePlan validates and persists a new tariff plan in the catalog.
func (s *TariffService) CreatePlan(ctx context.Context, plan *domain.TariffPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}

	return s.tariffRepo.Create(ctx, plan)
}

// UpdatePlan validates and updates an existing tariff plan. A running
// meter keeps the tariff it was started with; the new rates apply from
// the next meter start.
func (s *TariffService) UpdatePlan(ctx context.Context, plan *domain.TariffPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}

	if err := s.tariffRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownTariffPlan
		}
		return err
	}

	return nil
}

func validatePlan(plan *domain.TariffPlan) error {
	if plan == nil || plan.Name == "" {
		return ErrInvalidTariffPlan
	}
	return plan.Tariff().Validate()
}

// Resolve looks up the named plan and falls back to the supplied
// default tariff when the catalog has no such plan. The resolved
// tariff is fixed for the lifetime of the meter; fare-schedule changes
// require finalizing the current trip first.
func (s *TariffService) Resolve(ctx context.Context, planName string, fallback domain.Tariff, fallbackCurrency string) (domain.Tariff, string) {
	plan, err := s.GetPlan(ctx, planName)
	if err != nil {
		log.Printf("tariff plan %q unavailable (%v), using configured rates", planName, err)
		return fallback, fallbackCurrency
	}

	currency := plan.Currency
	if currency == "" {
		currency = fallbackCurrency
	}

	return plan.Tariff(), currency
}
