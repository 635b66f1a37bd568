// Package estimation searches for the maximum-likelihood proficiency given
// a response vector and the administered item parameters. It treats the irt
// package's negative log-likelihood as an opaque objective.
package estimation

import (
	"math"

	"github.com/adaptest/backend/internal/irt"
)

// Search bounds for the proficiency scale. Parameters estimated under a
// standard-normal population land well inside [-4, 4]; the margin keeps
// degenerate response vectors (all correct, all wrong) from pinning the
// estimate against a tight bound.
const (
	ThetaMin = -6.0
	ThetaMax = 6.0

	tolerance     = 1e-6
	maxIterations = 200
)

// invPhi is the golden ratio conjugate used for interval reduction.
var invPhi = (math.Sqrt(5) - 1) / 2

// Estimate is the outcome of a proficiency search.
type Estimate struct {
	Theta      float64 `json:"theta"`
	LogLik     float64 `json:"log_likelihood"`
	Iterations int     `json:"iterations"`
}

// EstimateTheta returns the theta in [ThetaMin, ThetaMax] that maximizes the
// log-likelihood of the given responses, found by golden-section search on
// the negative log-likelihood. The objective is evaluated once per
// iteration; the interval shrinks by the golden ratio each step until it is
// narrower than the tolerance.
//
// Degenerate response vectors legitimately drive the estimate to a bound;
// that is reported as a result, not an error. Validation errors from the
// core (length mismatch, malformed items) are returned as-is.
func EstimateTheta(responses []bool, items [][]float64) (Estimate, error) {
	// Surface shape errors before the search loop starts.
	if _, err := irt.LogLikelihood(0, responses, items); err != nil {
		return Estimate{}, err
	}

	lo, hi := ThetaMin, ThetaMax
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)

	f1, err := irt.NegativeLogLikelihood(x1, responses, items)
	if err != nil {
		return Estimate{}, err
	}
	f2, err := irt.NegativeLogLikelihood(x2, responses, items)
	if err != nil {
		return Estimate{}, err
	}

	iterations := 0
	for hi-lo > tolerance && iterations < maxIterations {
		if f1 < f2 {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1, err = irt.NegativeLogLikelihood(x1, responses, items)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2, err = irt.NegativeLogLikelihood(x2, responses, items)
		}
		if err != nil {
			return Estimate{}, err
		}
		iterations++
	}

	theta := (lo + hi) / 2
	ll, err := irt.LogLikelihood(theta, responses, items)
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{Theta: theta, LogLik: ll, Iterations: iterations}, nil
}
