package models

import "time"

// OperationKind distinguishes the two runway operation directions.
type OperationKind string

const (
	OperationDeparture OperationKind = "DEPARTURE"
	OperationArrival   OperationKind = "ARRIVAL"
)

// FlightOperation is one scheduled runway operation. ScheduledTime is
// timezone-naive airport-local wall-clock time; all comparisons inside the
// simulator are done on this single clock.
type FlightOperation struct {
	ID            string        `db:"id" json:"id"`
	FlightNumber  string        `db:"flight_number" json:"flight_number"`
	AircraftType  string        `db:"aircraft_type" json:"aircraft_type"`
	Kind          OperationKind `db:"kind" json:"kind"`
	ScheduledTime time.Time     `db:"scheduled_time" json:"scheduled_time"`
	// ActualTime is the observed operation time when the schedule was imported
	// from historical data. Used for simulated-vs-actual comparison and for
	// deriving the peak-period table; the engine never reads it.
	ActualTime *time.Time `db:"actual_time" json:"actual_time,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// FlightFilter captures filtering criteria for listing flights.
type FlightFilter struct {
	From      *time.Time
	To        *time.Time
	Kind      OperationKind
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
