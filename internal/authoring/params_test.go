package authoring

import (
	"testing"

	"github.com/adaptest/backend/internal/models"
)

func TestProvisionalParamsWithinBand(t *testing.T) {
	for band, r := range bandDifficultyRange {
		for i := 0; i < 100; i++ {
			a, b, c := ProvisionalParams(band)
			if a != pilotDiscrimination {
				t.Fatalf("band %s: a = %g, want %g", band, a, pilotDiscrimination)
			}
			if c != pilotGuessing {
				t.Fatalf("band %s: c = %g, want %g", band, c, pilotGuessing)
			}
			if b < r[0] || b > r[1] {
				t.Fatalf("band %s: b = %g outside [%g, %g]", band, b, r[0], r[1])
			}
		}
	}
}

func TestProvisionalParamsUnknownBandFallsBack(t *testing.T) {
	mid := bandDifficultyRange[models.BandMedium]
	for i := 0; i < 100; i++ {
		_, b, _ := ProvisionalParams(models.DifficultyBand("bogus"))
		if b < mid[0] || b > mid[1] {
			t.Fatalf("fallback b = %g outside medium band [%g, %g]", b, mid[0], mid[1])
		}
	}
}

func TestBandRangesAreOrdered(t *testing.T) {
	easy := bandDifficultyRange[models.BandEasy]
	medium := bandDifficultyRange[models.BandMedium]
	hard := bandDifficultyRange[models.BandHard]

	if easy[1] > medium[0] {
		t.Errorf("easy band %v overlaps medium %v", easy, medium)
	}
	if medium[1] > hard[0] {
		t.Errorf("medium band %v overlaps hard %v", medium, hard)
	}
}
