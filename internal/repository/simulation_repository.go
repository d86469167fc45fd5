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

// SimulationRepository provides persistence for simulation runs and their
// produced operations.
type SimulationRepository struct {
	db *sqlx.DB
}

// NewSimulationRepository creates a new simulation repository.
func NewSimulationRepository(db *sqlx.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

// CreateRun stores a queued simulation run.
func (r *SimulationRepository) CreateRun(ctx context.Context, run *models.SimulationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Status == "" {
		run.Status = models.RunStatusQueued
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO simulation_runs (id, status, progress, from_date, to_date, runway_count, flight_count, error_message, created_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.Progress, run.FromDate, run.ToDate,
		run.RunwayCount, run.FlightCount, run.ErrorMessage, run.CreatedAt, run.FinishedAt); err != nil {
		return fmt.Errorf("insert simulation run: %w", err)
	}
	return nil
}

// GetRun returns a run by ID.
func (r *SimulationRepository) GetRun(ctx context.Context, id string) (*models.SimulationRun, error) {
	const query = `SELECT id, status, progress, from_date, to_date, runway_count, flight_count, error_message, created_at, finished_at
		FROM simulation_runs WHERE id = $1`

	var run models.SimulationRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get simulation run: %w", err)
	}
	return &run, nil
}

// UpdateRunParams captures optional run updates.
type UpdateRunParams struct {
	Status       *models.SimulationRunStatus
	Progress     *int
	FlightCount  *int
	ErrorMessage *string
	FinishedAt   *time.Time
}

// UpdateRun patches run lifecycle fields.
func (r *SimulationRepository) UpdateRun(ctx context.Context, id string, params UpdateRunParams) error {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)

	if params.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *params.Status)
	}
	if params.Progress != nil {
		sets = append(sets, fmt.Sprintf("progress = $%d", len(args)+1))
		args = append(args, *params.Progress)
	}
	if params.FlightCount != nil {
		sets = append(sets, fmt.Sprintf("flight_count = $%d", len(args)+1))
		args = append(args, *params.FlightCount)
	}
	if params.ErrorMessage != nil {
		sets = append(sets, fmt.Sprintf("error_message = $%d", len(args)+1))
		args = append(args, *params.ErrorMessage)
	}
	if params.FinishedAt != nil {
		sets = append(sets, fmt.Sprintf("finished_at = $%d", len(args)+1))
		args = append(args, *params.FinishedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE simulation_runs SET %s WHERE id = $%d", joinSets(sets), len(args)+1)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update simulation run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}

// InsertOperations stores a run's simulated operations in one transaction.
func (r *SimulationRepository) InsertOperations(ctx context.Context, runID string, operations []models.SimulatedOperation) error {
	if len(operations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin operations insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO simulated_operations
		(run_id, flight_id, flight_number, aircraft_type, wake_category, kind, assigned_runway,
		 scheduled_time, reference_time, simulated_time, delay_minutes, disruption_flag, efficiency_factor, load_class)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for i := range operations {
		op := &operations[i]
		if _, err := tx.ExecContext(ctx, query,
			runID, op.FlightID, op.FlightNumber, op.AircraftType, op.WakeCategory, op.Kind,
			op.AssignedRunway, op.ScheduledTime, op.ReferenceTime, op.SimulatedTime,
			op.DelayMinutes, op.DisruptionFlag, op.EfficiencyFactor, op.LoadClass); err != nil {
			return fmt.Errorf("insert operation for flight %s: %w", op.FlightID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit operations insert: %w", err)
	}
	return nil
}

// ListOperations returns a page of a run's operations in simulated order.
func (r *SimulationRepository) ListOperations(ctx context.Context, runID string, page, pageSize int) ([]models.SimulatedOperation, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT run_id, flight_id, flight_number, aircraft_type, wake_category, kind, assigned_runway,
			scheduled_time, reference_time, simulated_time, delay_minutes, disruption_flag, efficiency_factor, load_class
		FROM simulated_operations WHERE run_id = $1 ORDER BY simulated_time ASC, flight_id ASC LIMIT %d OFFSET %d`, pageSize, offset)

	var operations []models.SimulatedOperation
	if err := r.db.SelectContext(ctx, &operations, query, runID); err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM simulated_operations WHERE run_id = $1", runID); err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}
	return operations, total, nil
}

// AllOperations returns every operation of a run, for aggregation and export.
func (r *SimulationRepository) AllOperations(ctx context.Context, runID string) ([]models.SimulatedOperation, error) {
	const query = `SELECT run_id, flight_id, flight_number, aircraft_type, wake_category, kind, assigned_runway,
			scheduled_time, reference_time, simulated_time, delay_minutes, disruption_flag, efficiency_factor, load_class
		FROM simulated_operations WHERE run_id = $1 ORDER BY simulated_time ASC, flight_id ASC`

	var operations []models.SimulatedOperation
	if err := r.db.SelectContext(ctx, &operations, query, runID); err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}
	return operations, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
