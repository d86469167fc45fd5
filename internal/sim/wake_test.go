package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

func TestClassifyKnownTypes(t *testing.T) {
	classifier := NewWakeClassifier(90)

	cases := []struct {
		aircraftType string
		category     models.WakeCategory
		rot          int
	}{
		{"773", models.WakeHeavy, 105},
		{"380", models.WakeHeavy, 105},
		{"320", models.WakeMedium, 90},
		{"738", models.WakeMedium, 90},
		{"AT7", models.WakeLight, 75},
		{"CR9", models.WakeLight, 75},
		{"76F", models.WakeCargo, 115},
		{"77F", models.WakeCargo, 115},
	}

	for _, tc := range cases {
		category, rot := classifier.Classify(tc.aircraftType)
		assert.Equal(t, tc.category, category, tc.aircraftType)
		assert.Equal(t, tc.rot, rot, tc.aircraftType)
	}
}

func TestClassifyUnknownTypeFallsBackToMedium(t *testing.T) {
	classifier := NewWakeClassifier(90)

	for _, code := range []string{"", "ZZZ", "B74X", "??"} {
		category, rot := classifier.Classify(code)
		assert.Equal(t, models.WakeMedium, category, code)
		assert.Equal(t, 90, rot, code)
	}
}

func TestOccupancyFloorForLightAircraft(t *testing.T) {
	classifier := NewWakeClassifier(70)
	_, rot := classifier.Classify("AT7")
	assert.Equal(t, 60, rot)
}

func TestClassifierDefaultsBaseROT(t *testing.T) {
	classifier := NewWakeClassifier(0)
	_, rot := classifier.Classify("320")
	assert.Equal(t, DefaultBaseROT, rot)
}
