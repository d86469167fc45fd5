package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/repository"
	"github.com/airside-lab/runwaysim-api/internal/sim"
	"github.com/airside-lab/runwaysim-api/pkg/config"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/jobs"
)

const maxRunDays = 62

type simulationStore interface {
	CreateRun(ctx context.Context, run *models.SimulationRun) error
	GetRun(ctx context.Context, id string) (*models.SimulationRun, error)
	UpdateRun(ctx context.Context, id string, params repository.UpdateRunParams) error
	InsertOperations(ctx context.Context, runID string, operations []models.SimulatedOperation) error
	ListOperations(ctx context.Context, runID string, page, pageSize int) ([]models.SimulatedOperation, int, error)
	AllOperations(ctx context.Context, runID string) ([]models.SimulatedOperation, error)
}

type scheduleReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.FlightOperation, error)
}

type disruptionReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error)
}

type peakTableProvider interface {
	Table() sim.LoadClassifier
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// runParams are per-run engine overrides. They live in memory alongside the
// in-memory queue; a recovered run falls back to configured defaults.
type runParams struct {
	serviceOffsetMinutes int
	usePeakModulator     bool
	tieBreakSeed         *int64
}

// SimulationService manages what-if run lifecycle: creation, queueing, and
// result retrieval.
type SimulationService struct {
	runs        simulationStore
	flights     scheduleReader
	disruptions disruptionReader
	peaks       peakTableProvider
	queue       jobDispatcher
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         config.SimulationConfig

	mu     sync.Mutex
	params map[string]runParams
}

// NewSimulationService constructs the service.
func NewSimulationService(runs simulationStore, flights scheduleReader, disruptions disruptionReader, peaks peakTableProvider, queue jobDispatcher, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg config.SimulationConfig) *SimulationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationService{
		runs:        runs,
		flights:     flights,
		disruptions: disruptions,
		peaks:       peaks,
		queue:       queue,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		params:      make(map[string]runParams),
	}
}

// Create validates the request, persists a queued run, and enqueues it.
func (s *SimulationService) Create(ctx context.Context, req dto.CreateSimulationRequest) (*dto.SimulationRunResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid fromDate %q, want YYYY-MM-DD", req.FromDate))
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid toDate %q, want YYYY-MM-DD", req.ToDate))
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "toDate must not precede fromDate")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxRunDays {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date range spans %d days, maximum is %d", days, maxRunDays))
	}

	runwayCount := s.cfg.RunwayCount
	if req.RunwayCount != nil {
		runwayCount = *req.RunwayCount
	}
	if runwayCount < 1 {
		return nil, appErrors.Clone(appErrors.ErrSimulationConfig, "runway count must be at least 1")
	}

	params := runParams{
		serviceOffsetMinutes: s.cfg.ServiceOffsetMinutes,
		usePeakModulator:     s.cfg.UsePeakModulator,
		tieBreakSeed:         s.cfg.TieBreakSeed,
	}
	if req.ServiceOffsetMinutes != nil {
		params.serviceOffsetMinutes = *req.ServiceOffsetMinutes
	}
	if req.UsePeakModulator != nil {
		params.usePeakModulator = *req.UsePeakModulator
	}
	if req.TieBreakSeed != nil {
		params.tieBreakSeed = req.TieBreakSeed
	}

	run := &models.SimulationRun{
		Status:      models.RunStatusQueued,
		FromDate:    from.UTC(),
		ToDate:      to.UTC(),
		RunwayCount: runwayCount,
	}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create simulation run")
	}

	s.mu.Lock()
	s.params[run.ID] = params
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: run.ID, Type: "simulation"}); err != nil {
		failed := models.RunStatusFailed
		msg := "failed to enqueue run"
		now := time.Now().UTC()
		progress := 100
		_ = s.runs.UpdateRun(ctx, run.ID, repository.UpdateRunParams{
			Status:       &failed,
			Progress:     &progress,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		})
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue simulation run")
	}

	s.logger.Info("simulation run queued",
		zap.String("run_id", run.ID),
		zap.Time("from", run.FromDate),
		zap.Time("to", run.ToDate),
		zap.Int("runways", runwayCount))
	return &dto.SimulationRunResponse{ID: run.ID, Status: run.Status, Progress: run.Progress}, nil
}

// paramsFor returns the run's engine overrides, falling back to defaults.
func (s *SimulationService) paramsFor(runID string) runParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.params[runID]; ok {
		return p
	}
	return runParams{
		serviceOffsetMinutes: s.cfg.ServiceOffsetMinutes,
		usePeakModulator:     s.cfg.UsePeakModulator,
		tieBreakSeed:         s.cfg.TieBreakSeed,
	}
}

func (s *SimulationService) forgetParams(runID string) {
	s.mu.Lock()
	delete(s.params, runID)
	s.mu.Unlock()
}

// Get returns run state plus, once finished, a cached summary.
func (s *SimulationService) Get(ctx context.Context, id string) (*dto.SimulationDetailResponse, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load simulation run")
	}

	resp := &dto.SimulationDetailResponse{Run: *run}
	if run.Status != models.RunStatusFinished {
		return resp, nil
	}

	cacheKey := fmt.Sprintf("sim:run:%s:summary", id)
	var cached models.RunSummary
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		resp.Summary = &cached
		return resp, nil
	}

	summary, err := s.buildSummary(ctx, run)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKey, summary, 0)
	resp.Summary = summary
	return resp, nil
}

// Operations returns a page of the run's simulated operations.
func (s *SimulationService) Operations(ctx context.Context, id string, page, pageSize int) (*dto.OperationsPageResponse, error) {
	if _, err := s.requireFinished(ctx, id); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	operations, total, err := s.runs.ListOperations(ctx, id, page, pageSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list simulated operations")
	}
	return &dto.OperationsPageResponse{
		Operations: operations,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, TotalCount: total},
	}, nil
}

// Backlog returns the run's backlog periods, derived from every stored
// operation and cached.
func (s *SimulationService) Backlog(ctx context.Context, id string) (*dto.BacklogResponse, error) {
	if _, err := s.requireFinished(ctx, id); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("sim:run:%s:backlog", id)
	var cached []models.BacklogPeriod
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &dto.BacklogResponse{RunID: id, Periods: cached}, nil
	}

	operations, err := s.runs.AllOperations(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load simulated operations")
	}
	periods := sim.AggregateBacklog(operations, s.cfg.DelayThresholdMinutes, s.cfg.BacklogThreshold)
	_ = s.cache.Set(ctx, cacheKey, periods, 0)
	return &dto.BacklogResponse{RunID: id, Periods: periods}, nil
}

func (s *SimulationService) requireFinished(ctx context.Context, id string) (*models.SimulationRun, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load simulation run")
	}
	if run.Status != models.RunStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrRunNotFinished, fmt.Sprintf("run is %s", run.Status))
	}
	return run, nil
}

func (s *SimulationService) buildSummary(ctx context.Context, run *models.SimulationRun) (*models.RunSummary, error) {
	operations, err := s.runs.AllOperations(ctx, run.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load simulated operations")
	}

	summary := &models.RunSummary{
		FlightCount: len(operations),
		RunwayUsage: make(map[int]int),
	}
	var delaySum float64
	for _, op := range operations {
		delaySum += op.DelayMinutes
		if op.DelayMinutes > float64(s.cfg.DelayThresholdMinutes) {
			summary.DelayedCount++
		}
		if op.ReferenceTime.After(op.ScheduledTime) {
			summary.SuspendedCount++
		}
		summary.RunwayUsage[op.AssignedRunway]++
	}
	if len(operations) > 0 {
		summary.MeanDelayMinutes = delaySum / float64(len(operations))
	}
	summary.BacklogPeriods = sim.AggregateBacklog(operations, s.cfg.DelayThresholdMinutes, s.cfg.BacklogThreshold)

	// Compare against imported actual operation times when present.
	flights, err := s.flights.ListByDateRange(ctx, run.FromDate, run.ToDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flights for comparison")
	}
	var actualSum float64
	var actualCount, actualDelayed int
	for _, flight := range flights {
		if flight.ActualTime == nil {
			continue
		}
		delay := flight.ActualTime.Sub(flight.ScheduledTime).Minutes()
		actualSum += delay
		actualCount++
		if delay > float64(s.cfg.DelayThresholdMinutes) {
			actualDelayed++
		}
	}
	if actualCount > 0 {
		mean := actualSum / float64(actualCount)
		summary.ActualMeanDelay = &mean
		summary.ActualDelayedCount = &actualDelayed
	}
	return summary, nil
}
