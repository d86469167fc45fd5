package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

type disruptionRepository interface {
	Create(ctx context.Context, period *models.DisruptionPeriod) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error)
	FindByID(ctx context.Context, id string) (*models.DisruptionPeriod, error)
	Delete(ctx context.Context, id string) error
}

// DisruptionService manages registered disruption periods.
type DisruptionService struct {
	repo      disruptionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDisruptionService constructs the service.
func NewDisruptionService(repo disruptionRepository, validate *validator.Validate, logger *zap.Logger) *DisruptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisruptionService{repo: repo, validator: validate, logger: logger}
}

// Create validates and stores a disruption period.
func (s *DisruptionService) Create(ctx context.Context, req dto.CreateDisruptionRequest) (*models.DisruptionPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", req.Date))
	}
	start, err := parseWindowTime(req.StartTime, date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid startTime: %v", err))
	}
	end, err := parseWindowTime(req.EndTime, date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid endTime: %v", err))
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	kind := models.DisruptionKind(req.Kind)
	period := &models.DisruptionPeriod{
		Kind:      kind,
		Date:      date.UTC(),
		StartTime: start,
		EndTime:   end,
	}
	switch kind {
	case models.DisruptionSuspension:
		if req.EfficiencyFactor != 0 || req.Policy != "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "suspension periods carry no efficiency factor or policy")
		}
	case models.DisruptionEfficiency:
		if req.EfficiencyFactor <= 0 || req.EfficiencyFactor > 1 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "efficiencyFactor must be in (0, 1]")
		}
		period.EfficiencyFactor = req.EfficiencyFactor
		period.Policy = models.SelectionPolicy(req.Policy)
		if period.Policy == "" {
			period.Policy = models.SelectAll
		}
	}

	if err := s.repo.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store disruption period")
	}

	s.logger.Info("disruption period registered",
		zap.String("id", period.ID),
		zap.String("kind", string(period.Kind)),
		zap.Time("start", period.StartTime),
		zap.Time("end", period.EndTime))
	return period, nil
}

// List returns disruption periods whose date falls in [from, to], in
// registration order.
func (s *DisruptionService) List(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error) {
	periods, err := s.repo.ListByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list disruption periods")
	}
	return periods, nil
}

// Delete removes a disruption period.
func (s *DisruptionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
			return err
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete disruption period")
	}
	return nil
}

// parseWindowTime accepts either an RFC 3339 timestamp or a bare HH:MM clock
// anchored to the period's date.
func parseWindowTime(value string, date time.Time) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or HH:MM, got %q", value)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
