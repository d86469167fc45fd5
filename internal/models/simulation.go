package models

import "time"

// WakeCategory is the wake-turbulence/weight class of an aircraft type.
type WakeCategory string

const (
	WakeHeavy  WakeCategory = "HEAVY"
	WakeMedium WakeCategory = "MEDIUM"
	WakeLight  WakeCategory = "LIGHT"
	WakeCargo  WakeCategory = "CARGO"
)

// LoadClass classifies a (date, hour) bucket by historically observed
// congestion.
type LoadClass string

const (
	LoadHigh   LoadClass = "HIGH"
	LoadMedium LoadClass = "MEDIUM"
	LoadLow    LoadClass = "LOW"
)

// SimulatedOperation is the engine's output record for one input flight.
// Records are created exactly once per flight and never mutated afterward.
type SimulatedOperation struct {
	RunID          string        `db:"run_id" json:"run_id,omitempty"`
	FlightID       string        `db:"flight_id" json:"flight_id"`
	FlightNumber   string        `db:"flight_number" json:"flight_number"`
	AircraftType   string        `db:"aircraft_type" json:"aircraft_type"`
	WakeCategory   WakeCategory  `db:"wake_category" json:"wake_category"`
	Kind           OperationKind `db:"kind" json:"kind"`
	AssignedRunway int           `db:"assigned_runway" json:"assigned_runway"`
	ScheduledTime  time.Time     `db:"scheduled_time" json:"scheduled_time"`
	// ReferenceTime is the baseline for DelayMinutes. Normally ScheduledTime;
	// for a flight caught inside a suspension window it is the suspension's
	// end time, so the reported delay measures queueing on top of the
	// disruption rather than the disruption itself.
	ReferenceTime    time.Time `db:"reference_time" json:"reference_time"`
	SimulatedTime    time.Time `db:"simulated_time" json:"simulated_time"`
	DelayMinutes     float64   `db:"delay_minutes" json:"delay_minutes"`
	DisruptionFlag   bool      `db:"disruption_flag" json:"disruption_flag"`
	EfficiencyFactor float64   `db:"efficiency_factor" json:"efficiency_factor"`
	LoadClass        LoadClass `db:"load_class" json:"load_class,omitempty"`
}

// BacklogPeriod is a maximal contiguous run of hours whose delayed-operation
// count exceeds the backlog threshold.
type BacklogPeriod struct {
	Date              time.Time `json:"date"`
	StartHour         int       `json:"start_hour"`
	EndHour           int       `json:"end_hour"`
	DurationHours     int       `json:"duration_hours"`
	TotalDelayedCount int       `json:"total_delayed_count"`
}

// SimulationRunStatus tracks the lifecycle of a queued simulation run.
type SimulationRunStatus string

const (
	RunStatusQueued   SimulationRunStatus = "QUEUED"
	RunStatusRunning  SimulationRunStatus = "RUNNING"
	RunStatusFinished SimulationRunStatus = "FINISHED"
	RunStatusFailed   SimulationRunStatus = "FAILED"
)

// SimulationRun is one multi-day what-if simulation request processed on the
// background queue.
type SimulationRun struct {
	ID           string              `db:"id" json:"id"`
	Status       SimulationRunStatus `db:"status" json:"status"`
	Progress     int                 `db:"progress" json:"progress"`
	FromDate     time.Time           `db:"from_date" json:"from_date"`
	ToDate       time.Time           `db:"to_date" json:"to_date"`
	RunwayCount  int                 `db:"runway_count" json:"runway_count"`
	FlightCount  int                 `db:"flight_count" json:"flight_count"`
	ErrorMessage *string             `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time          `db:"finished_at" json:"finished_at,omitempty"`
}

// RunSummary compares simulated results against imported actuals for a run.
type RunSummary struct {
	FlightCount        int             `json:"flight_count"`
	MeanDelayMinutes   float64         `json:"mean_delay_minutes"`
	DelayedCount       int             `json:"delayed_count"`
	SuspendedCount     int             `json:"suspended_count"`
	ActualMeanDelay    *float64        `json:"actual_mean_delay_minutes,omitempty"`
	ActualDelayedCount *int            `json:"actual_delayed_count,omitempty"`
	RunwayUsage        map[int]int     `json:"runway_usage"`
	BacklogPeriods     []BacklogPeriod `json:"backlog_periods,omitempty"`
}

// HourlyDelayStat is one historical (date, hour) bucket of observed delays,
// the input to peak-period classification.
type HourlyDelayStat struct {
	Date         time.Time `db:"date" json:"date"`
	Hour         int       `db:"hour" json:"hour"`
	FlightCount  int       `db:"flight_count" json:"flight_count"`
	DelayedCount int       `db:"delayed_count" json:"delayed_count"`
}

// PeakPeriod is a persisted load classification for one (date, hour).
type PeakPeriod struct {
	Date         time.Time `db:"date" json:"date"`
	Hour         int       `db:"hour" json:"hour"`
	Class        LoadClass `db:"class" json:"class"`
	DelayedCount int       `db:"delayed_count" json:"delayed_count"`
	FlightCount  int       `db:"flight_count" json:"flight_count"`
}
