package sim

import (
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// Multipliers scale the engine's baseline parameters for one load class. They
// are always applied multiplicatively to the base values, so all-ones exactly
// reproduces the unmodulated schedule.
type Multipliers struct {
	TaxiTime   float64
	Separation float64
	Occupancy  float64
}

// IdentityMultipliers leave every baseline parameter unchanged.
func IdentityMultipliers() Multipliers {
	return Multipliers{TaxiTime: 1, Separation: 1, Occupancy: 1}
}

// LoadClassifier supplies the engine with per-(date, hour) load classes and
// their multiplier sets. Implementations must be pure lookups.
type LoadClassifier interface {
	Classify(date time.Time, hour int) models.LoadClass
	Multipliers(class models.LoadClass) Multipliers
}

type hourKey struct {
	year  int
	month time.Month
	day   int
	hour  int
}

func keyFor(date time.Time, hour int) hourKey {
	y, m, d := date.Date()
	return hourKey{year: y, month: m, day: d, hour: hour}
}

// PeakTable is a precomputed LoadClassifier backed by typed (date, hour)
// keys. Entries for hours without historical data are simply absent: Classify
// returns the empty class and Multipliers returns the identity, which keeps
// unclassified hours byte-identical to a run without any modulator.
type PeakTable struct {
	classes     map[hourKey]models.LoadClass
	multipliers map[models.LoadClass]Multipliers
}

// NewPeakTable builds an empty table with the default multiplier sets.
func NewPeakTable() *PeakTable {
	return &PeakTable{
		classes: make(map[hourKey]models.LoadClass),
		multipliers: map[models.LoadClass]Multipliers{
			models.LoadHigh:   {TaxiTime: 1.2, Separation: 1.15, Occupancy: 1.1},
			models.LoadMedium: {TaxiTime: 1.1, Separation: 1.05, Occupancy: 1.0},
			models.LoadLow:    {TaxiTime: 1.0, Separation: 0.95, Occupancy: 0.95},
		},
	}
}

// Set records the load class for one (date, hour).
func (t *PeakTable) Set(date time.Time, hour int, class models.LoadClass) {
	t.classes[keyFor(date, hour)] = class
}

// SetMultipliers overrides the multiplier set for a load class.
func (t *PeakTable) SetMultipliers(class models.LoadClass, m Multipliers) {
	t.multipliers[class] = m
}

// Classify returns the stored class for the hour, or the empty class when the
// hour was never classified.
func (t *PeakTable) Classify(date time.Time, hour int) models.LoadClass {
	return t.classes[keyFor(date, hour)]
}

// Multipliers returns the multiplier set for a class; unknown or empty
// classes map to the identity.
func (t *PeakTable) Multipliers(class models.LoadClass) Multipliers {
	if m, ok := t.multipliers[class]; ok {
		return m
	}
	return IdentityMultipliers()
}

// Len reports the number of classified hours.
func (t *PeakTable) Len() int {
	return len(t.classes)
}

// ClassifyHourlyStats derives a peak table from historical per-hour delayed
// flight counts: hours at or above the backlog threshold are High, hours at
// or above half of it are Medium, the rest are Low.
func ClassifyHourlyStats(stats []models.HourlyDelayStat, backlogThreshold int) *PeakTable {
	table := NewPeakTable()
	if backlogThreshold <= 0 {
		backlogThreshold = 10
	}
	for _, stat := range stats {
		class := models.LoadLow
		switch {
		case stat.DelayedCount >= backlogThreshold:
			class = models.LoadHigh
		case float64(stat.DelayedCount) >= float64(backlogThreshold)/2:
			class = models.LoadMedium
		}
		table.Set(stat.Date, stat.Hour, class)
	}
	return table
}
