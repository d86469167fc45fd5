package sim

import (
	"fmt"
	"time"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

// DisruptionRegistry holds the validated disruption periods for one simulated
// day. Read-only after construction; safe to share across concurrent day
// workers.
type DisruptionRegistry struct {
	suspensions  []models.DisruptionPeriod
	efficiencies []models.DisruptionPeriod
}

// NewDisruptionRegistry validates and indexes the given periods. Registration
// order is preserved: when periods overlap, the first matching one wins.
func NewDisruptionRegistry(periods []models.DisruptionPeriod) (*DisruptionRegistry, error) {
	registry := &DisruptionRegistry{}
	for i, p := range periods {
		if !p.EndTime.After(p.StartTime) {
			return nil, fmt.Errorf("disruption period %d: end time %s not after start time %s",
				i, p.EndTime.Format(time.RFC3339), p.StartTime.Format(time.RFC3339))
		}
		switch p.Kind {
		case models.DisruptionSuspension:
			registry.suspensions = append(registry.suspensions, p)
		case models.DisruptionEfficiency:
			if p.EfficiencyFactor <= 0 || p.EfficiencyFactor > 1 {
				return nil, fmt.Errorf("disruption period %d: efficiency factor %.3f outside (0, 1]", i, p.EfficiencyFactor)
			}
			registry.efficiencies = append(registry.efficiencies, p)
		default:
			return nil, fmt.Errorf("disruption period %d: unknown kind %q", i, p.Kind)
		}
	}
	return registry, nil
}

// SuspensionFor returns the first suspension window containing the scheduled
// time, or nil. A flight inside the window may not operate before the window
// ends, and its delay reference becomes the window's end time.
func (r *DisruptionRegistry) SuspensionFor(scheduled time.Time) *models.DisruptionPeriod {
	for i := range r.suspensions {
		p := &r.suspensions[i]
		if inWindow(scheduled, p) {
			return p
		}
	}
	return nil
}

// EfficiencyFor returns the first efficiency window containing the scheduled
// time whose selection policy covers the given wake category, or nil.
func (r *DisruptionRegistry) EfficiencyFor(scheduled time.Time, category models.WakeCategory) *models.DisruptionPeriod {
	for i := range r.efficiencies {
		p := &r.efficiencies[i]
		if !inWindow(scheduled, p) {
			continue
		}
		if policyCovers(p.Policy, category) {
			return p
		}
		// The window matched but its policy exempts this flight; per the
		// first-match rule no later window is consulted.
		return nil
	}
	return nil
}

func inWindow(t time.Time, p *models.DisruptionPeriod) bool {
	return !t.Before(p.StartTime) && !t.After(p.EndTime)
}

func policyCovers(policy models.SelectionPolicy, category models.WakeCategory) bool {
	switch policy {
	case models.SelectPriorityBySize:
		return category == models.WakeLight || category == models.WakeMedium
	case models.SelectAll, models.SelectSequential, "":
		return true
	default:
		return true
	}
}
