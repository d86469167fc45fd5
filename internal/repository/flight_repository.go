package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// FlightRepository provides persistence for scheduled flight operations.
type FlightRepository struct {
	db *sqlx.DB
}

// NewFlightRepository creates a new flight repository.
func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// BulkCreate inserts imported flight operations, assigning IDs where absent.
func (r *FlightRepository) BulkCreate(ctx context.Context, flights []models.FlightOperation) (int, error) {
	if len(flights) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin flight import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO flights (id, flight_number, aircraft_type, kind, scheduled_time, actual_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now().UTC()
	inserted := 0
	for i := range flights {
		f := &flights[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		if _, err := tx.ExecContext(ctx, query,
			f.ID, f.FlightNumber, f.AircraftType, f.Kind, f.ScheduledTime, f.ActualTime, f.CreatedAt); err != nil {
			return 0, fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit flight import: %w", err)
	}
	return inserted, nil
}

// List returns flights with optional filtering and pagination.
func (r *FlightRepository) List(ctx context.Context, filter models.FlightFilter) ([]models.FlightOperation, int, error) {
	base := "FROM flights WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_time >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_time < $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"scheduled_time": true,
		"flight_number":  true,
		"created_at":     true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "scheduled_time"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, flight_number, aircraft_type, kind, scheduled_time, actual_time, created_at %s ORDER BY %s %s LIMIT %d OFFSET %d",
		base, sortBy, order, size, offset)
	var flights []models.FlightOperation
	if err := r.db.SelectContext(ctx, &flights, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count flights: %w", err)
	}

	return flights, total, nil
}

// ListByDateRange returns every flight scheduled in [from, to) ordered by
// scheduled time, the engine's required processing order.
func (r *FlightRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.FlightOperation, error) {
	const query = `SELECT id, flight_number, aircraft_type, kind, scheduled_time, actual_time, created_at
		FROM flights WHERE scheduled_time >= $1 AND scheduled_time < $2 ORDER BY scheduled_time ASC`

	var flights []models.FlightOperation
	if err := r.db.SelectContext(ctx, &flights, query, from, to); err != nil {
		return nil, fmt.Errorf("list flights by range: %w", err)
	}
	return flights, nil
}

// HourlyDelayStats aggregates observed delays from imported actual times into
// per-(date, hour) buckets, the input to peak-period classification.
func (r *FlightRepository) HourlyDelayStats(ctx context.Context, from, to time.Time, delayThresholdMinutes int) ([]models.HourlyDelayStat, error) {
	const query = `SELECT
			date_trunc('day', scheduled_time) AS date,
			EXTRACT(HOUR FROM scheduled_time)::int AS hour,
			COUNT(*) AS flight_count,
			COUNT(*) FILTER (
				WHERE actual_time IS NOT NULL
				AND EXTRACT(EPOCH FROM (actual_time - scheduled_time)) / 60 > $3
			) AS delayed_count
		FROM flights
		WHERE scheduled_time >= $1 AND scheduled_time < $2
		GROUP BY 1, 2
		ORDER BY 1, 2`

	var stats []models.HourlyDelayStat
	if err := r.db.SelectContext(ctx, &stats, query, from, to, delayThresholdMinutes); err != nil {
		return nil, fmt.Errorf("hourly delay stats: %w", err)
	}
	return stats, nil
}
