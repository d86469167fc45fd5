package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/airside-lab/runwaysim-api/internal/models"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

func TestDisruptionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDisruptionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO disruption_periods")).
		WithArgs(sqlmock.AnyArg(), models.DisruptionSuspension, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 0.0, models.SelectionPolicy(""), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	period := &models.DisruptionPeriod{
		Kind:      models.DisruptionSuspension,
		Date:      day,
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(12 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), period))
	require.NotEmpty(t, period.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDisruptionRepositoryListByDateRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDisruptionRepository(db)

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)

	rows := sqlmock.NewRows([]string{"id", "kind", "date", "start_time", "end_time", "efficiency_factor", "policy", "created_at"}).
		AddRow("d-1", "SUSPENSION", from, from.Add(10*time.Hour), from.Add(12*time.Hour), 0.0, "", time.Now().Add(-time.Hour)).
		AddRow("d-2", "EFFICIENCY", from, from.Add(11*time.Hour), from.Add(13*time.Hour), 0.5, "ALL", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM disruption_periods WHERE date >= $1 AND date < $2 ORDER BY created_at ASC, id ASC")).
		WithArgs(from, to).
		WillReturnRows(rows)

	periods, err := repo.ListByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	require.Equal(t, models.DisruptionSuspension, periods[0].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDisruptionRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDisruptionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM disruption_periods WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDisruptionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDisruptionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM disruption_periods WHERE id = $1")).
		WithArgs("d-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "d-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM disruption_periods WHERE id = $1")).
		WithArgs("d-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "d-2"), appErrors.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
