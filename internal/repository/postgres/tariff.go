package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"taximeter/internal/domain"
	"taximeter/internal/repository"
)

// TariffRepository is a PostgreSQL implementation of repository.TariffRepository.
type TariffRepository struct {
	q Querier
}

// NewTariffRepository creates a new PostgreSQL tariff repository.
func NewTariffRepository(db *sql.DB) *TariffRepository {
	return &TariffRepository{q: db}
}

// NewTariffRepositoryWithTx creates a tariff repository using a transaction.
func NewTariffRepositoryWithTx(tx *sql.Tx) *TariffRepository {
	return &TariffRepository{q: tx}
}

// Create persists a new tariff plan.
func (r *TariffRepository) Create(ctx context.Context, plan *domain.TariffPlan) error {
	query := `
		INSERT INTO tariff_plans (name, currency, base_fare, per_kilometer, per_minute, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	updatedAt := plan.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := r.q.ExecContext(ctx, query,
		plan.Name,
		plan.Currency,
		plan.BaseFare,
		plan.PerKilometer,
		plan.PerMinute,
		updatedAt,
	)

	return err
}

// GetByName retrieves a tariff plan by its name.
func (r *TariffRepository) GetByName(ctx context.Context, name string) (*domain.TariffPlan, error) {
	query := `
		SELECT name, currency, base_fare, per_kilometer, per_minute, updated_at
		FROM tariff_plans WHERE name = $1
	`

	var plan domain.TariffPlan
	err := r.q.QueryRowContext(ctx, query, name).Scan(
		&plan.Name,
		&plan.Currency,
		&plan.BaseFare,
		&plan.PerKilometer,
		&plan.PerMinute,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &plan, nil
}

// GetAll retrieves all tariff plans ordered by name.
func (r *TariffRepository) GetAll(ctx context.Context) ([]*domain.TariffPlan, error) {
	query := `
		SELECT name, currency, base_fare, per_kilometer, per_minute, updated_at
		FROM tariff_plans ORDER BY name
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.TariffPlan
	for rows.Next() {
		var plan domain.TariffPlan
		if err := rows.Scan(
			&plan.Name,
			&plan.Currency,
			&plan.BaseFare,
			&plan.PerKilometer,
			&plan.PerMinute,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}

	return plans, rows.Err()
}

// Update updates an existing tariff plan.
func (r *TariffRepository) Update(ctx context.Context, plan *domain.TariffPlan) error {
	query := `
		UPDATE tariff_plans
		SET currency = $2, base_fare = $3, per_kilometer = $4, per_minute = $5, updated_at = $6
		WHERE name = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		plan.Name,
		plan.Currency,
		plan.BaseFare,
		plan.PerKilometer,
		plan.PerMinute,
		time.Now(),
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
