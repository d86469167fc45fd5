package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// ScheduleConfig carries the engine parameters for one simulated day. The
// zero value is usable: default classifier, zero service offset, no peak
// modulation, deterministic lowest-index tie-breaking.
type ScheduleConfig struct {
	// StandardServiceOffset is the minimum time between a flight's scheduled
	// time and its earliest possible operation: taxi-out for departures,
	// equivalent ground handling for arrivals.
	StandardServiceOffset time.Duration
	// Classifier maps aircraft types to wake categories and occupancy times.
	Classifier *WakeClassifier
	// Peak optionally modulates offsets, separations and occupancy by
	// historical load class. Nil disables modulation entirely.
	Peak LoadClassifier
	// TieBreakSeed, when set, breaks equal-availability runway ties with a
	// seeded pseudo-random pick instead of the lowest index. Runs with the
	// same seed are reproducible.
	TieBreakSeed *int64
}

// runwayState is the per-runway mutable state for one simulated day. Owned
// exclusively by the engine loop and discarded at day end; there is no
// cross-day carry-over.
type runwayState struct {
	used             bool
	lastTime         time.Time
	lastCategory     models.WakeCategory
	occupancySeconds float64
}

// SimulateDay runs the runway assignment and separation engine over one day's
// flights. Flights are processed in strictly ascending scheduled-time order;
// every input flight yields exactly one SimulatedOperation and none is ever
// dropped. Configuration problems are reported before any flight is
// processed.
func SimulateDay(flights []models.FlightOperation, disruptions []models.DisruptionPeriod, runwayCount int, cfg ScheduleConfig) ([]models.SimulatedOperation, error) {
	if runwayCount <= 0 {
		return nil, fmt.Errorf("runway count must be positive, got %d", runwayCount)
	}
	registry, err := NewDisruptionRegistry(disruptions)
	if err != nil {
		return nil, err
	}

	classifier := cfg.Classifier
	if classifier == nil {
		classifier = NewWakeClassifier(DefaultBaseROT)
	}
	offset := cfg.StandardServiceOffset
	if offset < 0 {
		return nil, fmt.Errorf("standard service offset must not be negative, got %s", offset)
	}
	var rng *rand.Rand
	if cfg.TieBreakSeed != nil {
		rng = rand.New(rand.NewSource(*cfg.TieBreakSeed))
	}

	ordered := make([]models.FlightOperation, len(flights))
	copy(ordered, flights)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ScheduledTime.Before(ordered[j].ScheduledTime)
	})

	runways := make([]runwayState, runwayCount)
	results := make([]models.SimulatedOperation, 0, len(ordered))

	for _, flight := range ordered {
		category, occupancy := classifier.Classify(flight.AircraftType)

		multipliers := IdentityMultipliers()
		var loadClass models.LoadClass
		if cfg.Peak != nil {
			loadClass = cfg.Peak.Classify(flight.ScheduledTime, flight.ScheduledTime.Hour())
			multipliers = cfg.Peak.Multipliers(loadClass)
		}

		runway := chooseRunway(runways, rng)
		state := &runways[runway]

		earliest := flight.ScheduledTime.Add(scaleDuration(offset, multipliers.TaxiTime))
		reference := flight.ScheduledTime
		disrupted := false
		if suspension := registry.SuspensionFor(flight.ScheduledTime); suspension != nil {
			if suspension.EndTime.After(earliest) {
				earliest = suspension.EndTime
			}
			reference = suspension.EndTime
			disrupted = true
		}

		efficiency := 1.0
		if period := registry.EfficiencyFor(flight.ScheduledTime, category); period != nil {
			efficiency = period.EfficiencyFactor
		}

		simulated := earliest
		if state.used {
			gap := float64(SeparationSeconds(state.lastCategory, category)) * multipliers.Separation / efficiency
			if state.occupancySeconds > gap {
				gap = state.occupancySeconds
			}
			if free := state.lastTime.Add(time.Duration(gap * float64(time.Second))); free.After(simulated) {
				simulated = free
			}
		}

		results = append(results, models.SimulatedOperation{
			FlightID:         flight.ID,
			FlightNumber:     flight.FlightNumber,
			AircraftType:     flight.AircraftType,
			WakeCategory:     category,
			Kind:             flight.Kind,
			AssignedRunway:   runway,
			ScheduledTime:    flight.ScheduledTime,
			ReferenceTime:    reference,
			SimulatedTime:    simulated,
			DelayMinutes:     simulated.Sub(reference).Minutes(),
			DisruptionFlag:   disrupted,
			EfficiencyFactor: efficiency,
			LoadClass:        loadClass,
		})

		state.used = true
		state.lastTime = simulated
		state.lastCategory = category
		state.occupancySeconds = float64(occupancy) * multipliers.Occupancy
	}

	return results, nil
}

// chooseRunway picks the runway whose last operation is earliest; a runway
// that has not operated yet always wins over one that has. Ties go to the
// lowest index unless a seeded rng was injected.
func chooseRunway(runways []runwayState, rng *rand.Rand) int {
	candidates := []int{0}
	for i := 1; i < len(runways); i++ {
		switch compareAvailability(&runways[i], &runways[candidates[0]]) {
		case -1:
			candidates = candidates[:1]
			candidates[0] = i
		case 0:
			candidates = append(candidates, i)
		}
	}
	if rng != nil && len(candidates) > 1 {
		return candidates[rng.Intn(len(candidates))]
	}
	return candidates[0]
}

func compareAvailability(a, b *runwayState) int {
	switch {
	case !a.used && !b.used:
		return 0
	case !a.used:
		return -1
	case !b.used:
		return 1
	case a.lastTime.Before(b.lastTime):
		return -1
	case b.lastTime.Before(a.lastTime):
		return 1
	default:
		return 0
	}
}

func scaleDuration(d time.Duration, factor float64) time.Duration {
	if factor == 1 {
		return d
	}
	return time.Duration(float64(d) * factor)
}
