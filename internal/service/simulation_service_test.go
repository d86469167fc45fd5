package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/repository"
	"github.com/airside-lab/runwaysim-api/internal/sim"
	"github.com/airside-lab/runwaysim-api/pkg/config"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/jobs"
)

type runStoreStub struct {
	mu         sync.Mutex
	runs       map[string]*models.SimulationRun
	operations map[string][]models.SimulatedOperation
}

func newRunStoreStub() *runStoreStub {
	return &runStoreStub{
		runs:       map[string]*models.SimulationRun{},
		operations: map[string][]models.SimulatedOperation{},
	}
}

func (r *runStoreStub) CreateRun(ctx context.Context, run *models.SimulationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Status == "" {
		run.Status = models.RunStatusQueued
	}
	r.runs[run.ID] = run
	return nil
}

func (r *runStoreStub) GetRun(ctx context.Context, id string) (*models.SimulationRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	copied := *run
	return &copied, nil
}

func (r *runStoreStub) UpdateRun(ctx context.Context, id string, params repository.UpdateRunParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if params.Status != nil {
		run.Status = *params.Status
	}
	if params.Progress != nil {
		run.Progress = *params.Progress
	}
	if params.FlightCount != nil {
		run.FlightCount = *params.FlightCount
	}
	if params.ErrorMessage != nil {
		run.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		run.FinishedAt = params.FinishedAt
	}
	return nil
}

func (r *runStoreStub) InsertOperations(ctx context.Context, runID string, operations []models.SimulatedOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[runID] = append(r.operations[runID], operations...)
	return nil
}

func (r *runStoreStub) ListOperations(ctx context.Context, runID string, page, pageSize int) ([]models.SimulatedOperation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.operations[runID]
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (r *runStoreStub) AllOperations(ctx context.Context, runID string) ([]models.SimulatedOperation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.operations[runID], nil
}

type scheduleStub struct {
	flights []models.FlightOperation
	err     error
}

func (s *scheduleStub) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.FlightOperation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.FlightOperation
	for _, f := range s.flights {
		if !f.ScheduledTime.Before(from) && f.ScheduledTime.Before(to) {
			out = append(out, f)
		}
	}
	return out, nil
}

type disruptionStub struct {
	periods []models.DisruptionPeriod
}

func (s *disruptionStub) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error) {
	return s.periods, nil
}

type queueStub struct {
	jobs []jobs.Job
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type peakStub struct{ table *sim.PeakTable }

func (p peakStub) Table() sim.LoadClassifier { return p.table }

func testSimConfig() config.SimulationConfig {
	return config.SimulationConfig{
		RunwayCount:           2,
		ServiceOffsetMinutes:  15,
		BaseROTSeconds:        90,
		DelayThresholdMinutes: 15,
		BacklogThreshold:      10,
		WorkerConcurrency:     2,
	}
}

func newTestService(store *runStoreStub, flights *scheduleStub, queue *queueStub) *SimulationService {
	return NewSimulationService(store, flights, &disruptionStub{}, peakStub{table: sim.NewPeakTable()},
		queue, NewCacheService(nil, nil, 0, zap.NewNop(), false), nil, zap.NewNop(), testSimConfig())
}

func TestSimulationCreateEnqueues(t *testing.T) {
	store := newRunStoreStub()
	queue := &queueStub{}
	svc := newTestService(store, &scheduleStub{}, queue)

	resp, err := svc.Create(context.Background(), dto.CreateSimulationRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-03",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusQueued, resp.Status)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, resp.ID, queue.jobs[0].ID)

	run, err := store.GetRun(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.RunwayCount)
}

func TestSimulationCreateValidation(t *testing.T) {
	svc := newTestService(newRunStoreStub(), &scheduleStub{}, &queueStub{})

	cases := []dto.CreateSimulationRequest{
		{FromDate: "", ToDate: "2024-07-01"},
		{FromDate: "not-a-date", ToDate: "2024-07-01"},
		{FromDate: "2024-07-02", ToDate: "2024-07-01"},
		{FromDate: "2024-01-01", ToDate: "2024-12-31"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
	}
}

func TestSimulationCreateEnqueueFailureMarksRunFailed(t *testing.T) {
	store := newRunStoreStub()
	queue := &queueStub{err: errors.New("queue full")}
	svc := newTestService(store, &scheduleStub{}, queue)

	_, err := svc.Create(context.Background(), dto.CreateSimulationRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-01",
	})
	require.Error(t, err)

	for _, run := range store.runs {
		assert.Equal(t, models.RunStatusFailed, run.Status)
	}
}

func TestSimulationBacklogRequiresFinishedRun(t *testing.T) {
	store := newRunStoreStub()
	svc := newTestService(store, &scheduleStub{}, &queueStub{})

	run := &models.SimulationRun{Status: models.RunStatusRunning, RunwayCount: 2}
	require.NoError(t, store.CreateRun(context.Background(), run))

	_, err := svc.Backlog(context.Background(), run.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRunNotFinished.Code, appErrors.FromError(err).Code)

	_, err = svc.Backlog(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestWorkerProcessesRunEndToEnd(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	flights := &scheduleStub{flights: []models.FlightOperation{
		{ID: "f-1", FlightNumber: "CZ3101", AircraftType: "738", Kind: models.OperationDeparture, ScheduledTime: day.Add(8 * time.Hour)},
		{ID: "f-2", FlightNumber: "CZ3102", AircraftType: "773", Kind: models.OperationArrival, ScheduledTime: day.Add(8*time.Hour + time.Minute)},
		{ID: "f-3", FlightNumber: "CZ3103", AircraftType: "AT7", Kind: models.OperationDeparture, ScheduledTime: day.AddDate(0, 0, 1).Add(9 * time.Hour)},
	}}
	store := newRunStoreStub()
	svc := newTestService(store, flights, &queueStub{})
	worker := NewSimulationWorker(svc, NewMetricsService(), 3, zap.NewNop())

	resp, err := svc.Create(context.Background(), dto.CreateSimulationRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-02",
	})
	require.NoError(t, err)

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 1}))

	run, err := store.GetRun(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFinished, run.Status)
	assert.Equal(t, 100, run.Progress)
	assert.Equal(t, 3, run.FlightCount)
	require.NotNil(t, run.FinishedAt)

	detail, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Summary)
	assert.Equal(t, 3, detail.Summary.FlightCount)
	assert.Nil(t, detail.Summary.ActualMeanDelay)

	ops, err := svc.Operations(context.Background(), resp.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, ops.Operations, 3)

	backlog, err := svc.Backlog(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Empty(t, backlog.Periods)
}

func TestWorkerRetriesThenFails(t *testing.T) {
	store := newRunStoreStub()
	flights := &scheduleStub{err: errors.New("db down")}
	svc := newTestService(store, flights, &queueStub{})
	worker := NewSimulationWorker(svc, NewMetricsService(), 2, zap.NewNop())

	resp, err := svc.Create(context.Background(), dto.CreateSimulationRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-01",
	})
	require.NoError(t, err)

	require.Error(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 1}))
	run, _ := store.GetRun(context.Background(), resp.ID)
	assert.Equal(t, models.RunStatusQueued, run.Status)

	require.Error(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 2}))
	run, _ = store.GetRun(context.Background(), resp.ID)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
}

func TestSummaryComparesActuals(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	actual := day.Add(8*time.Hour + 40*time.Minute)
	flights := &scheduleStub{flights: []models.FlightOperation{
		{ID: "f-1", FlightNumber: "CZ3101", AircraftType: "738", Kind: models.OperationDeparture,
			ScheduledTime: day.Add(8 * time.Hour), ActualTime: &actual},
	}}
	store := newRunStoreStub()
	svc := newTestService(store, flights, &queueStub{})
	worker := NewSimulationWorker(svc, NewMetricsService(), 3, zap.NewNop())

	resp, err := svc.Create(context.Background(), dto.CreateSimulationRequest{
		FromDate: "2024-07-01",
		ToDate:   "2024-07-01",
	})
	require.NoError(t, err)
	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID, Attempt: 1}))

	detail, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Summary)
	require.NotNil(t, detail.Summary.ActualMeanDelay)
	assert.InDelta(t, 40.0, *detail.Summary.ActualMeanDelay, 0.001)
	require.NotNil(t, detail.Summary.ActualDelayedCount)
	assert.Equal(t, 1, *detail.Summary.ActualDelayedCount)
}
