package sim

import "github.com/airside-lab/runwaysim-api/internal/models"

// DefaultBaseROT is the nominal runway occupancy time in seconds for a
// Medium-category aircraft. Category offsets are applied relative to it.
const DefaultBaseROT = 90

// aircraftTypesByCategory maps ICAO-style type codes observed in the source
// schedules to wake categories. Codes absent from every list classify as
// Medium; an unrecognised type is routine input, not an error.
var aircraftTypesByCategory = map[models.WakeCategory][]string{
	models.WakeHeavy: {
		"773", "772", "77W", "77L", "744", "748", "380", "359", "358", "35K",
	},
	models.WakeMedium: {
		"32G", "32N", "32A", "321", "320", "319", "327", "32S", "32Q",
		"73M", "738", "739", "73G", "73H", "737", "73W", "73J",
		"909", "290", "E90", "ER4", "ERJ", "E75",
	},
	models.WakeLight: {
		"AT7", "AT5", "DH8", "CR9", "CRJ", "CR7", "E45", "SF3", "J41",
	},
	models.WakeCargo: {
		"76F", "77F", "74F", "32P", "737F",
	},
}

// WakeClassifier maps aircraft type codes to wake categories and nominal
// runway occupancy times. Lookups are pure and side-effect free.
type WakeClassifier struct {
	baseROT int
	byType  map[string]models.WakeCategory
}

// NewWakeClassifier builds a classifier around the given base ROT in seconds.
// A non-positive base falls back to DefaultBaseROT.
func NewWakeClassifier(baseROT int) *WakeClassifier {
	if baseROT <= 0 {
		baseROT = DefaultBaseROT
	}
	byType := make(map[string]models.WakeCategory)
	for category, codes := range aircraftTypesByCategory {
		for _, code := range codes {
			byType[code] = category
		}
	}
	return &WakeClassifier{baseROT: baseROT, byType: byType}
}

// Classify returns the wake category and nominal runway occupancy seconds for
// an aircraft type code. Unknown codes deterministically classify as Medium.
func (c *WakeClassifier) Classify(aircraftType string) (models.WakeCategory, int) {
	category, ok := c.byType[aircraftType]
	if !ok {
		category = models.WakeMedium
	}
	return category, c.OccupancySeconds(category)
}

// OccupancySeconds returns the nominal ROT for a wake category.
func (c *WakeClassifier) OccupancySeconds(category models.WakeCategory) int {
	switch category {
	case models.WakeHeavy:
		return c.baseROT + 15
	case models.WakeLight:
		if c.baseROT-15 < 60 {
			return 60
		}
		return c.baseROT - 15
	case models.WakeCargo:
		return c.baseROT + 25
	default:
		return c.baseROT
	}
}
