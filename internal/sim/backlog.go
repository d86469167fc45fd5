package sim

import (
	"sort"
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// AggregateBacklog reduces a day's (or range's) simulated operations to the
// maximal contiguous runs of hours whose delayed-operation count is strictly
// above the backlog threshold. Hours are bucketed by the scheduled time's
// calendar date and hour of day; a gap of even one hour starts a new period.
// Pure over its input: identical operations in any order yield identical
// output.
func AggregateBacklog(operations []models.SimulatedOperation, delayThresholdMinutes, backlogThreshold int) []models.BacklogPeriod {
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}

	counts := make(map[dayKey]map[int]int)
	for _, op := range operations {
		if op.DelayMinutes <= float64(delayThresholdMinutes) {
			continue
		}
		y, m, d := op.ScheduledTime.Date()
		key := dayKey{year: y, month: m, day: d}
		if counts[key] == nil {
			counts[key] = make(map[int]int)
		}
		counts[key][op.ScheduledTime.Hour()]++
	}

	days := make([]dayKey, 0, len(counts))
	for key := range counts {
		days = append(days, key)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.month != b.month {
			return a.month < b.month
		}
		return a.day < b.day
	})

	var periods []models.BacklogPeriod
	for _, day := range days {
		hourly := counts[day]
		hours := make([]int, 0, len(hourly))
		for hour, count := range hourly {
			if count > backlogThreshold {
				hours = append(hours, hour)
			}
		}
		if len(hours) == 0 {
			continue
		}
		sort.Ints(hours)

		date := time.Date(day.year, day.month, day.day, 0, 0, 0, 0, time.UTC)
		start := hours[0]
		total := hourly[start]
		prev := start
		for _, hour := range hours[1:] {
			if hour == prev+1 {
				prev = hour
				total += hourly[hour]
				continue
			}
			periods = append(periods, backlogPeriod(date, start, prev, total))
			start, prev, total = hour, hour, hourly[hour]
		}
		periods = append(periods, backlogPeriod(date, start, prev, total))
	}

	return periods
}

func backlogPeriod(date time.Time, start, end, total int) models.BacklogPeriod {
	return models.BacklogPeriod{
		Date:              date,
		StartHour:         start,
		EndHour:           end,
		DurationHours:     end - start + 1,
		TotalDelayedCount: total,
	}
}
