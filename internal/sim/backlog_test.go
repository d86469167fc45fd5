package sim

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

func delayedOpsForHour(date time.Time, hour, count int, delayMinutes float64) []models.SimulatedOperation {
	ops := make([]models.SimulatedOperation, 0, count)
	for i := 0; i < count; i++ {
		scheduled := time.Date(date.Year(), date.Month(), date.Day(), hour, i%60, 0, 0, time.UTC)
		ops = append(ops, models.SimulatedOperation{
			FlightID:      fmt.Sprintf("%02d-%d", hour, i),
			ScheduledTime: scheduled,
			SimulatedTime: scheduled.Add(time.Duration(delayMinutes * float64(time.Minute))),
			ReferenceTime: scheduled,
			DelayMinutes:  delayMinutes,
		})
	}
	return ops
}

func TestAggregateBacklogContiguousRun(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	var ops []models.SimulatedOperation
	for hour := 8; hour <= 10; hour++ {
		ops = append(ops, delayedOpsForHour(date, hour, 10, 30)...)
	}

	periods := AggregateBacklog(ops, 15, 8)
	require.Len(t, periods, 1)
	assert.Equal(t, 8, periods[0].StartHour)
	assert.Equal(t, 10, periods[0].EndHour)
	assert.Equal(t, 3, periods[0].DurationHours)
	assert.Equal(t, 30, periods[0].TotalDelayedCount)
	assert.Equal(t, date, periods[0].Date)
}

func TestAggregateBacklogGapSplitsPeriods(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	var ops []models.SimulatedOperation
	for _, hour := range []int{8, 10} {
		ops = append(ops, delayedOpsForHour(date, hour, 10, 30)...)
	}
	// Hour nine exists but has no delayed flights.
	ops = append(ops, delayedOpsForHour(date, 9, 5, 0)...)

	periods := AggregateBacklog(ops, 15, 8)
	require.Len(t, periods, 2)
	assert.Equal(t, 8, periods[0].StartHour)
	assert.Equal(t, 8, periods[0].EndHour)
	assert.Equal(t, 10, periods[1].StartHour)
	assert.Equal(t, 1, periods[1].DurationHours)
}

func TestAggregateBacklogThresholdIsStrict(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	ops := delayedOpsForHour(date, 9, 8, 30)

	assert.Empty(t, AggregateBacklog(ops, 15, 8))
	assert.Len(t, AggregateBacklog(ops, 15, 7), 1)
}

func TestAggregateBacklogOrderInsensitive(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	var ops []models.SimulatedOperation
	for hour := 6; hour <= 22; hour++ {
		count := 3 + hour%9
		ops = append(ops, delayedOpsForHour(date, hour, count, 25)...)
	}

	expected := AggregateBacklog(ops, 15, 8)

	shuffled := make([]models.SimulatedOperation, len(ops))
	copy(shuffled, ops)
	rng := rand.New(rand.NewSource(11))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assert.Equal(t, expected, AggregateBacklog(shuffled, 15, 8))
}

func TestAggregateBacklogSeparatesDates(t *testing.T) {
	first := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	var ops []models.SimulatedOperation
	// 23:00 on day one and 00:00 on day two are wall-clock adjacent but must
	// not merge into one period.
	ops = append(ops, delayedOpsForHour(first, 23, 10, 30)...)
	ops = append(ops, delayedOpsForHour(second, 0, 10, 30)...)

	periods := AggregateBacklog(ops, 15, 8)
	require.Len(t, periods, 2)
	assert.Equal(t, first, periods[0].Date)
	assert.Equal(t, second, periods[1].Date)
}

func TestAggregateBacklogEmptyInput(t *testing.T) {
	assert.Empty(t, AggregateBacklog(nil, 15, 8))
}
