package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airside-lab/runwaysim-api/internal/models"
)

var allCategories = []models.WakeCategory{
	models.WakeHeavy, models.WakeMedium, models.WakeLight, models.WakeCargo,
}

func TestSeparationTableIsTotal(t *testing.T) {
	for _, leading := range allCategories {
		for _, following := range allCategories {
			assert.Positive(t, SeparationSeconds(leading, following), "%s -> %s", leading, following)
		}
	}
}

func TestSeparationAsymmetry(t *testing.T) {
	// A heavy leader demands far more room before a light follower than the
	// reverse pairing.
	assert.Greater(t,
		SeparationSeconds(models.WakeHeavy, models.WakeLight),
		SeparationSeconds(models.WakeLight, models.WakeHeavy))
	assert.Greater(t,
		SeparationSeconds(models.WakeHeavy, models.WakeMedium),
		SeparationSeconds(models.WakeMedium, models.WakeHeavy))
}

func TestSeparationCargoSeparatesAsHeavy(t *testing.T) {
	for _, other := range allCategories {
		assert.Equal(t,
			SeparationSeconds(models.WakeHeavy, other),
			SeparationSeconds(models.WakeCargo, other))
		assert.Equal(t,
			SeparationSeconds(other, models.WakeHeavy),
			SeparationSeconds(other, models.WakeCargo))
	}
}

func TestSeparationNormalisesUnknownCategories(t *testing.T) {
	assert.Equal(t,
		SeparationSeconds(models.WakeMedium, models.WakeMedium),
		SeparationSeconds("BOGUS", ""))
}
