package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

type disruptionRepoStub struct {
	created []*models.DisruptionPeriod
	stored  map[string]*models.DisruptionPeriod
}

func newDisruptionRepoStub() *disruptionRepoStub {
	return &disruptionRepoStub{stored: map[string]*models.DisruptionPeriod{}}
}

func (r *disruptionRepoStub) Create(ctx context.Context, period *models.DisruptionPeriod) error {
	if period.ID == "" {
		period.ID = "d-1"
	}
	r.created = append(r.created, period)
	r.stored[period.ID] = period
	return nil
}

func (r *disruptionRepoStub) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error) {
	var out []models.DisruptionPeriod
	for _, p := range r.created {
		out = append(out, *p)
	}
	return out, nil
}

func (r *disruptionRepoStub) FindByID(ctx context.Context, id string) (*models.DisruptionPeriod, error) {
	p, ok := r.stored[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return p, nil
}

func (r *disruptionRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.stored[id]; !ok {
		return appErrors.ErrNotFound
	}
	delete(r.stored, id)
	return nil
}

func TestDisruptionCreateSuspension(t *testing.T) {
	repo := newDisruptionRepoStub()
	svc := NewDisruptionService(repo, nil, zap.NewNop())

	period, err := svc.Create(context.Background(), dto.CreateDisruptionRequest{
		Kind:      "SUSPENSION",
		Date:      "2024-07-01",
		StartTime: "10:00",
		EndTime:   "12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DisruptionSuspension, period.Kind)
	assert.Equal(t, time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), period.StartTime)
	assert.Equal(t, time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC), period.EndTime)
	assert.Zero(t, period.EfficiencyFactor)
}

func TestDisruptionCreateEfficiencyDefaultsPolicy(t *testing.T) {
	repo := newDisruptionRepoStub()
	svc := NewDisruptionService(repo, nil, zap.NewNop())

	period, err := svc.Create(context.Background(), dto.CreateDisruptionRequest{
		Kind:             "EFFICIENCY",
		Date:             "2024-07-01",
		StartTime:        "2024-07-01T14:00:00Z",
		EndTime:          "2024-07-01T16:00:00Z",
		EfficiencyFactor: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SelectAll, period.Policy)
	assert.Equal(t, 0.5, period.EfficiencyFactor)
}

func TestDisruptionCreateValidation(t *testing.T) {
	svc := NewDisruptionService(newDisruptionRepoStub(), nil, zap.NewNop())

	cases := []struct {
		name string
		req  dto.CreateDisruptionRequest
	}{
		{"unknown kind", dto.CreateDisruptionRequest{Kind: "CLOSURE", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00"}},
		{"bad date", dto.CreateDisruptionRequest{Kind: "SUSPENSION", Date: "July 1st", StartTime: "10:00", EndTime: "11:00"}},
		{"end before start", dto.CreateDisruptionRequest{Kind: "SUSPENSION", Date: "2024-07-01", StartTime: "11:00", EndTime: "10:00"}},
		{"zero factor", dto.CreateDisruptionRequest{Kind: "EFFICIENCY", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00"}},
		{"factor above one", dto.CreateDisruptionRequest{Kind: "EFFICIENCY", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00", EfficiencyFactor: 1.5}},
		{"suspension with factor", dto.CreateDisruptionRequest{Kind: "SUSPENSION", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00", EfficiencyFactor: 0.5}},
		{"bad policy", dto.CreateDisruptionRequest{Kind: "EFFICIENCY", Date: "2024-07-01", StartTime: "10:00", EndTime: "11:00", EfficiencyFactor: 0.5, Policy: "RANDOM"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
		})
	}
}

func TestDisruptionDelete(t *testing.T) {
	repo := newDisruptionRepoStub()
	svc := NewDisruptionService(repo, nil, zap.NewNop())

	period, err := svc.Create(context.Background(), dto.CreateDisruptionRequest{
		Kind:      "SUSPENSION",
		Date:      "2024-07-01",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), period.ID))
	err = svc.Delete(context.Background(), period.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
