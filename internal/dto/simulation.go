package dto

import "github.com/airside-lab/runwaysim-api/internal/models"

// CreateSimulationRequest captures POST /simulations payload. Dates use the
// layout "2006-01-02"; ToDate is inclusive.
type CreateSimulationRequest struct {
	FromDate             string `json:"fromDate" validate:"required"`
	ToDate               string `json:"toDate" validate:"required"`
	RunwayCount          *int   `json:"runwayCount,omitempty" validate:"omitempty,min=1,max=8"`
	ServiceOffsetMinutes *int   `json:"serviceOffsetMinutes,omitempty" validate:"omitempty,min=0"`
	UsePeakModulator     *bool  `json:"usePeakModulator,omitempty"`
	TieBreakSeed         *int64 `json:"tieBreakSeed,omitempty"`
}

// SimulationRunResponse is returned after enqueueing a run.
type SimulationRunResponse struct {
	ID       string                     `json:"id"`
	Status   models.SimulationRunStatus `json:"status"`
	Progress int                        `json:"progress"`
}

// SimulationDetailResponse exposes run state and, once finished, its summary.
type SimulationDetailResponse struct {
	Run     models.SimulationRun `json:"run"`
	Summary *models.RunSummary   `json:"summary,omitempty"`
}

// OperationsPageResponse carries a page of simulated operations.
type OperationsPageResponse struct {
	Operations []models.SimulatedOperation `json:"operations"`
	Pagination models.Pagination           `json:"pagination"`
}

// BacklogResponse lists the run's backlog periods.
type BacklogResponse struct {
	RunID   string                 `json:"runId"`
	Periods []models.BacklogPeriod `json:"periods"`
}
