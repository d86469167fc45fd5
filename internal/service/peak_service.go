package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/sim"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

type delayStatsRepository interface {
	HourlyDelayStats(ctx context.Context, from, to time.Time, delayThresholdMinutes int) ([]models.HourlyDelayStat, error)
}

// PeakService derives the peak-period load table from historical delay data
// and serves it to the scheduling engine.
type PeakService struct {
	repo                  delayStatsRepository
	delayThresholdMinutes int
	backlogThreshold      int
	logger                *zap.Logger

	mu      sync.RWMutex
	table   *sim.PeakTable
	entries []models.PeakPeriod
}

// NewPeakService constructs the service with an empty table; until Rebuild is
// called every hour classifies as unmodulated.
func NewPeakService(repo delayStatsRepository, delayThresholdMinutes, backlogThreshold int, logger *zap.Logger) *PeakService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeakService{
		repo:                  repo,
		delayThresholdMinutes: delayThresholdMinutes,
		backlogThreshold:      backlogThreshold,
		logger:                logger,
		table:                 sim.NewPeakTable(),
	}
}

// Rebuild reclassifies every (date, hour) bucket in [from, to] from stored
// actual-time delays and swaps in the new table.
func (s *PeakService) Rebuild(ctx context.Context, from, to time.Time) (*dto.PeakTableResponse, error) {
	stats, err := s.repo.HourlyDelayStats(ctx, from, to.AddDate(0, 0, 1), s.delayThresholdMinutes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hourly delay stats")
	}

	table := sim.ClassifyHourlyStats(stats, s.backlogThreshold)
	entries := make([]models.PeakPeriod, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, models.PeakPeriod{
			Date:         stat.Date,
			Hour:         stat.Hour,
			Class:        table.Classify(stat.Date, stat.Hour),
			DelayedCount: stat.DelayedCount,
			FlightCount:  stat.FlightCount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Hour < entries[j].Hour
	})

	s.mu.Lock()
	s.table = table
	s.entries = entries
	s.mu.Unlock()

	s.logger.Info("peak table rebuilt",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("hours", len(entries)))
	return &dto.PeakTableResponse{Entries: entries, Total: len(entries)}, nil
}

// Table returns the current load classifier for the engine.
func (s *PeakService) Table() sim.LoadClassifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// List returns the current table entries.
func (s *PeakService) List(ctx context.Context) (*dto.PeakTableResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &dto.PeakTableResponse{Entries: s.entries, Total: len(s.entries)}, nil
}
