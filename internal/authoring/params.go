package authoring

import (
	"math/rand"

	"github.com/adaptest/backend/internal/models"
)

// Provisional parameter policy for pilot drafts: neutral discrimination,
// guessing fixed at 1/5 for five-choice items, and difficulty drawn
// uniformly inside the requested band. Calibration replaces all three.
var bandDifficultyRange = map[models.DifficultyBand][2]float64{
	models.BandEasy:   {-2.0, -0.7},
	models.BandMedium: {-0.7, 0.7},
	models.BandHard:   {0.7, 2.0},
}

const (
	pilotDiscrimination = 1.0
	pilotGuessing       = 0.2
)

// ProvisionalParams returns the (a, b, c) triple assigned to a freshly
// drafted pilot item in the given band.
func ProvisionalParams(band models.DifficultyBand) (a, b, c float64) {
	r, ok := bandDifficultyRange[band]
	if !ok {
		r = bandDifficultyRange[models.BandMedium]
	}
	b = r[0] + rand.Float64()*(r[1]-r[0])
	return pilotDiscrimination, b, pilotGuessing
}
