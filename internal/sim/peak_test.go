package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

func TestPeakTableLookup(t *testing.T) {
	table := NewPeakTable()
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	table.Set(date, 8, models.LoadHigh)

	assert.Equal(t, models.LoadHigh, table.Classify(date, 8))
	// The time-of-day component of the date argument is irrelevant.
	assert.Equal(t, models.LoadHigh, table.Classify(date.Add(13*time.Hour), 8))
	assert.Equal(t, models.LoadClass(""), table.Classify(date, 9))
	assert.Equal(t, models.LoadClass(""), table.Classify(date.AddDate(0, 0, 1), 8))
}

func TestPeakTableUnknownClassIsIdentity(t *testing.T) {
	table := NewPeakTable()
	assert.Equal(t, IdentityMultipliers(), table.Multipliers(""))
	assert.Equal(t, IdentityMultipliers(), table.Multipliers("RUSH"))
}

func TestPeakTableDefaultMultipliers(t *testing.T) {
	table := NewPeakTable()
	high := table.Multipliers(models.LoadHigh)
	low := table.Multipliers(models.LoadLow)
	assert.Greater(t, high.Separation, low.Separation)
	assert.Greater(t, high.TaxiTime, 1.0)
	assert.Less(t, low.Occupancy, 1.0)
}

func TestClassifyHourlyStats(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	stats := []models.HourlyDelayStat{
		{Date: date, Hour: 7, FlightCount: 40, DelayedCount: 12},
		{Date: date, Hour: 8, FlightCount: 35, DelayedCount: 10},
		{Date: date, Hour: 9, FlightCount: 30, DelayedCount: 5},
		{Date: date, Hour: 10, FlightCount: 25, DelayedCount: 4},
	}

	table := ClassifyHourlyStats(stats, 10)
	assert.Equal(t, models.LoadHigh, table.Classify(date, 7))
	assert.Equal(t, models.LoadHigh, table.Classify(date, 8))
	assert.Equal(t, models.LoadMedium, table.Classify(date, 9))
	assert.Equal(t, models.LoadLow, table.Classify(date, 10))
	assert.Equal(t, 4, table.Len())
}
