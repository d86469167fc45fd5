package models

import "time"

// DisruptionKind distinguishes full closures from throughput reductions.
type DisruptionKind string

const (
	DisruptionSuspension DisruptionKind = "SUSPENSION"
	DisruptionEfficiency DisruptionKind = "EFFICIENCY"
)

// SelectionPolicy determines which flights inside an efficiency window are
// actually throttled.
type SelectionPolicy string

const (
	// SelectAll throttles every flight scheduled inside the window.
	SelectAll SelectionPolicy = "ALL"
	// SelectSequential throttles every flight in schedule order. Equivalent to
	// SelectAll for the current model; kept distinct so ordering-sensitive
	// effects can diverge later without a data migration.
	SelectSequential SelectionPolicy = "SEQUENTIAL"
	// SelectPriorityBySize throttles only Light and Medium aircraft, modelling
	// controllers prioritising heavier traffic during reduced capacity.
	SelectPriorityBySize SelectionPolicy = "PRIORITY_BY_SIZE"
)

// DisruptionPeriod is a time-bounded service disruption tied to a single
// calendar date. A multi-day disruption is stored as one row per affected
// date, each clipped to that date's bounds.
type DisruptionPeriod struct {
	ID        string         `db:"id" json:"id"`
	Kind      DisruptionKind `db:"kind" json:"kind"`
	Date      time.Time      `db:"date" json:"date"`
	StartTime time.Time      `db:"start_time" json:"start_time"`
	EndTime   time.Time      `db:"end_time" json:"end_time"`
	// EfficiencyFactor is meaningful only for EFFICIENCY periods; a factor
	// below 1 lengthens the effective separation gap. Must be in (0, 1].
	EfficiencyFactor float64         `db:"efficiency_factor" json:"efficiency_factor,omitempty"`
	Policy           SelectionPolicy `db:"policy" json:"policy,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
