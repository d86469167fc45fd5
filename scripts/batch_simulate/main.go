// Command batch_simulate runs the scheduling engine over a CSV schedule
// without the API server, printing per-day delay statistics. Useful for
// parameter sweeps against historical schedules.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/sim"
)

func main() {
	var (
		schedulePath  string
		runwayCount   int
		offsetMinutes int
		baseROT       int
		seedRaw       string
	)

	flag.StringVar(&schedulePath, "schedule", "", "Path to CSV schedule (flight_number,aircraft_type,kind,scheduled_time)")
	flag.IntVar(&runwayCount, "runways", 2, "Number of runways")
	flag.IntVar(&offsetMinutes, "offset", 15, "Standard service offset in minutes")
	flag.IntVar(&baseROT, "rot", 90, "Base runway occupancy time in seconds")
	flag.StringVar(&seedRaw, "seed", "", "Tie-break seed (empty keeps deterministic lowest-index rule)")
	flag.Parse()

	seed, err := parseSeed(seedRaw)
	if err != nil {
		log.Fatalf("invalid -seed %q: %v", seedRaw, err)
	}

	if schedulePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	flights, err := loadSchedule(schedulePath)
	if err != nil {
		log.Fatalf("failed to load schedule: %v", err)
	}

	cfg := sim.ScheduleConfig{
		StandardServiceOffset: time.Duration(offsetMinutes) * time.Minute,
		Classifier:            sim.NewWakeClassifier(baseROT),
	}
	cfg.TieBreakSeed = seed

	byDay := map[time.Time][]models.FlightOperation{}
	for _, f := range flights {
		day := f.ScheduledTime.Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], f)
	}
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	fmt.Printf("%-12s %8s %10s %10s %10s\n", "date", "flights", "mean(min)", "max(min)", ">15min")
	for _, day := range days {
		operations, err := sim.SimulateDay(byDay[day], nil, runwayCount, cfg)
		if err != nil {
			log.Fatalf("simulation failed for %s: %v", day.Format("2006-01-02"), err)
		}
		var sum, max float64
		delayed := 0
		for _, op := range operations {
			sum += op.DelayMinutes
			if op.DelayMinutes > max {
				max = op.DelayMinutes
			}
			if op.DelayMinutes > 15 {
				delayed++
			}
		}
		mean := 0.0
		if len(operations) > 0 {
			mean = sum / float64(len(operations))
		}
		fmt.Printf("%-12s %8d %10.2f %10.2f %10d\n",
			day.Format("2006-01-02"), len(operations), mean, max, delayed)
	}
}

// parseSeed distinguishes "no seed" from any numeric seed, zero included.
func parseSeed(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func loadSchedule(path string) ([]models.FlightOperation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("schedule %s has no data rows", path)
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"flight_number", "aircraft_type", "kind", "scheduled_time"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var flights []models.FlightOperation
	for i, record := range records[1:] {
		scheduled, err := parseTime(record[columns["scheduled_time"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		flights = append(flights, models.FlightOperation{
			ID:            fmt.Sprintf("row-%d", i+2),
			FlightNumber:  strings.TrimSpace(record[columns["flight_number"]]),
			AircraftType:  strings.ToUpper(strings.TrimSpace(record[columns["aircraft_type"]])),
			Kind:          models.OperationKind(strings.ToUpper(strings.TrimSpace(record[columns["kind"]]))),
			ScheduledTime: scheduled,
		})
	}
	return flights, nil
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
