package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/airside-lab/runwaysim-api/internal/models"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

// DisruptionRepository provides persistence for disruption periods.
type DisruptionRepository struct {
	db *sqlx.DB
}

// NewDisruptionRepository creates a new disruption repository.
func NewDisruptionRepository(db *sqlx.DB) *DisruptionRepository {
	return &DisruptionRepository{db: db}
}

// Create stores a disruption period.
func (r *DisruptionRepository) Create(ctx context.Context, period *models.DisruptionPeriod) error {
	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	if period.CreatedAt.IsZero() {
		period.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO disruption_periods (id, kind, date, start_time, end_time, efficiency_factor, policy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		period.ID, period.Kind, period.Date, period.StartTime, period.EndTime,
		period.EfficiencyFactor, period.Policy, period.CreatedAt); err != nil {
		return fmt.Errorf("insert disruption period: %w", err)
	}
	return nil
}

// ListByDateRange returns periods whose date falls in [from, to), preserving
// creation order so first-match resolution stays stable across runs.
func (r *DisruptionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error) {
	const query = `SELECT id, kind, date, start_time, end_time, efficiency_factor, policy, created_at
		FROM disruption_periods WHERE date >= $1 AND date < $2 ORDER BY created_at ASC, id ASC`

	var periods []models.DisruptionPeriod
	if err := r.db.SelectContext(ctx, &periods, query, from, to); err != nil {
		return nil, fmt.Errorf("list disruption periods: %w", err)
	}
	return periods, nil
}

// FindByID returns a single disruption period.
func (r *DisruptionRepository) FindByID(ctx context.Context, id string) (*models.DisruptionPeriod, error) {
	const query = `SELECT id, kind, date, start_time, end_time, efficiency_factor, policy, created_at
		FROM disruption_periods WHERE id = $1`

	var period models.DisruptionPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("find disruption period: %w", err)
	}
	return &period, nil
}

// Delete removes a disruption period.
func (r *DisruptionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM disruption_periods WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete disruption period: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
