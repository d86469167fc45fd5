package dto

import "github.com/airside-lab/runwaysim-api/internal/models"

// RebuildPeaksRequest captures POST /peaks/rebuild payload. Dates use the
// layout "2006-01-02"; ToDate is inclusive.
type RebuildPeaksRequest struct {
	FromDate string `json:"fromDate" validate:"required"`
	ToDate   string `json:"toDate" validate:"required"`
}

// PeakTableResponse exposes the derived load-class table.
type PeakTableResponse struct {
	Entries []models.PeakPeriod `json:"entries"`
	Total   int                 `json:"total"`
}
