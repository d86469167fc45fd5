package dto

import (
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// FlightListRequest captures query parameters for GET /flights.
type FlightListRequest struct {
	From      *time.Time
	To        *time.Time
	Kind      string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// FlightImportResponse summarises an XLSX/CSV schedule upload.
type FlightImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// FlightListResponse carries a page of flights.
type FlightListResponse struct {
	Flights    []models.FlightOperation `json:"flights"`
	Pagination models.Pagination        `json:"pagination"`
}
