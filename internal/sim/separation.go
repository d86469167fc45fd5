package sim

import "github.com/airside-lab/runwaysim-api/internal/models"

// wakeSeparationMatrix holds the minimum gap in seconds between a leading
// operation of one category and a following operation on the same runway.
// Wake turbulence from a heavier leader demands a longer gap before a lighter
// follower, hence the asymmetry. Cargo airframes are heavy-class for wake
// purposes and carry Heavy's rows and columns.
var wakeSeparationMatrix = map[[2]models.WakeCategory]int{
	{models.WakeHeavy, models.WakeHeavy}:   105,
	{models.WakeHeavy, models.WakeMedium}:  135,
	{models.WakeHeavy, models.WakeLight}:   195,
	{models.WakeHeavy, models.WakeCargo}:   105,
	{models.WakeMedium, models.WakeHeavy}:  75,
	{models.WakeMedium, models.WakeMedium}: 105,
	{models.WakeMedium, models.WakeLight}:  135,
	{models.WakeMedium, models.WakeCargo}:  75,
	{models.WakeLight, models.WakeHeavy}:   75,
	{models.WakeLight, models.WakeMedium}:  75,
	{models.WakeLight, models.WakeLight}:   105,
	{models.WakeLight, models.WakeCargo}:   75,
	{models.WakeCargo, models.WakeHeavy}:   105,
	{models.WakeCargo, models.WakeMedium}:  135,
	{models.WakeCargo, models.WakeLight}:   195,
	{models.WakeCargo, models.WakeCargo}:   105,
}

// SeparationSeconds returns the minimum same-runway time gap between a leading
// and a following operation. Total over the closed category enum; values
// outside the enum are normalised to Medium first, mirroring the classifier
// fallback.
func SeparationSeconds(leading, following models.WakeCategory) int {
	if seconds, ok := wakeSeparationMatrix[[2]models.WakeCategory{leading, following}]; ok {
		return seconds
	}
	return wakeSeparationMatrix[[2]models.WakeCategory{normalise(leading), normalise(following)}]
}

func normalise(category models.WakeCategory) models.WakeCategory {
	switch category {
	case models.WakeHeavy, models.WakeMedium, models.WakeLight, models.WakeCargo:
		return category
	default:
		return models.WakeMedium
	}
}
