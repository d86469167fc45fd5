package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/repository"
	"github.com/airside-lab/runwaysim-api/internal/sim"
	"github.com/airside-lab/runwaysim-api/pkg/jobs"
)

// SimulationWorker executes queued runs day by day on the jobs queue.
type SimulationWorker struct {
	service    *SimulationService
	metrics    *MetricsService
	logger     *zap.Logger
	maxRetries int
}

// NewSimulationWorker constructs a worker.
func NewSimulationWorker(service *SimulationService, metrics *MetricsService, maxRetries int, logger *zap.Logger) *SimulationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &SimulationWorker{service: service, metrics: metrics, logger: logger, maxRetries: maxRetries}
}

// Handle processes one queued simulation run.
func (w *SimulationWorker) Handle(ctx context.Context, job jobs.Job) error {
	s := w.service
	run, err := s.runs.GetRun(ctx, job.ID)
	if err != nil {
		return err
	}

	running := models.RunStatusRunning
	progress := 5
	if err := s.runs.UpdateRun(ctx, job.ID, repository.UpdateRunParams{Status: &running, Progress: &progress}); err != nil {
		return err
	}

	flightCount, err := w.simulate(ctx, run)
	if err != nil {
		msg := err.Error()
		if job.Attempt >= w.maxRetries {
			failed := models.RunStatusFailed
			progress = 100
			now := time.Now().UTC()
			if updateErr := s.runs.UpdateRun(ctx, job.ID, repository.UpdateRunParams{
				Status:       &failed,
				Progress:     &progress,
				ErrorMessage: &msg,
				FinishedAt:   &now,
			}); updateErr != nil {
				w.logger.Warn("failed to mark run failed", zap.String("run_id", job.ID), zap.Error(updateErr))
			}
			s.forgetParams(job.ID)
			w.metrics.RecordRunCompleted(string(models.RunStatusFailed))
		} else {
			queued := models.RunStatusQueued
			reset := 0
			if updateErr := s.runs.UpdateRun(ctx, job.ID, repository.UpdateRunParams{
				Status:       &queued,
				Progress:     &reset,
				ErrorMessage: &msg,
			}); updateErr != nil {
				w.logger.Warn("failed to requeue run", zap.String("run_id", job.ID), zap.Error(updateErr))
			}
		}
		return err
	}

	finished := models.RunStatusFinished
	progress = 100
	now := time.Now().UTC()
	clear := ""
	if err := s.runs.UpdateRun(ctx, job.ID, repository.UpdateRunParams{
		Status:       &finished,
		Progress:     &progress,
		FlightCount:  &flightCount,
		ErrorMessage: &clear,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark run finished", zap.String("run_id", job.ID), zap.Error(err))
		return err
	}
	s.forgetParams(job.ID)
	w.metrics.RecordRunCompleted(string(models.RunStatusFinished))
	_ = s.cache.Invalidate(ctx, "sim:run:"+job.ID+":*")

	w.logger.Info("simulation run finished",
		zap.String("run_id", job.ID),
		zap.Int("flights", flightCount))
	return nil
}

// simulate schedules each day of the run independently, bounding day-level
// parallelism by the configured worker concurrency.
func (w *SimulationWorker) simulate(ctx context.Context, run *models.SimulationRun) (int, error) {
	s := w.service
	params := s.paramsFor(run.ID)

	disruptions, err := s.disruptions.ListByDateRange(ctx, run.FromDate, run.ToDate.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	var days []time.Time
	for day := run.FromDate; !day.After(run.ToDate); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	cfg := sim.ScheduleConfig{
		StandardServiceOffset: time.Duration(params.serviceOffsetMinutes) * time.Minute,
		Classifier:            sim.NewWakeClassifier(s.cfg.BaseROTSeconds),
		TieBreakSeed:          params.tieBreakSeed,
	}
	if params.usePeakModulator && s.peaks != nil {
		cfg.Peak = s.peaks.Table()
	}

	results := make([][]models.SimulatedOperation, len(days))
	errs := make([]error, len(days))

	concurrency := s.cfg.WorkerConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func(i int, day time.Time) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			flights, err := s.flights.ListByDateRange(ctx, day, day.AddDate(0, 0, 1))
			if err != nil {
				errs[i] = err
				return
			}
			start := time.Now()
			operations, err := sim.SimulateDay(flights, disruptionsForDay(disruptions, day), run.RunwayCount, cfg)
			if err != nil {
				errs[i] = err
				return
			}
			w.metrics.RecordSimulatedDay(len(operations), time.Since(start))
			results[i] = operations
		}(i, day)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	total := 0
	for i, operations := range results {
		if err := s.runs.InsertOperations(ctx, run.ID, operations); err != nil {
			return 0, err
		}
		total += len(operations)

		progress := 5 + (90*(i+1))/len(days)
		_ = s.runs.UpdateRun(ctx, run.ID, repository.UpdateRunParams{Progress: &progress})
	}
	return total, nil
}

func disruptionsForDay(periods []models.DisruptionPeriod, day time.Time) []models.DisruptionPeriod {
	var out []models.DisruptionPeriod
	for _, p := range periods {
		if p.Date.Year() == day.Year() && p.Date.YearDay() == day.YearDay() {
			out = append(out, p)
		}
	}
	return out
}
