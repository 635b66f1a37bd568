package irt

import (
	"fmt"
	"math"
)

// probEpsilon bounds probabilities away from 0 and 1 before taking logs.
// For extreme theta the 3PL saturates in float64 and log would return -Inf;
// since the likelihood is the innermost evaluation of the proficiency-search
// optimizer it must never blow up mid-search.
const probEpsilon = 1e-10

// LogLikelihood returns the log-likelihood of an estimated proficiency given
// a binary response vector and the matching administered-item parameter
// matrix (same length, same order):
//
//	LL = sum_i [ x_i*log(P_i) + (1-x_i)*log(1-P_i) ]
//
// A length mismatch between responses and items is a *ValidationError,
// checked before any computation. Each P_i is clamped into
// (probEpsilon, 1-probEpsilon) before the logarithm.
func LogLikelihood(theta float64, responses []bool, items [][]float64) (float64, error) {
	if len(responses) != len(items) {
		return 0, &ValidationError{Issues: []string{
			fmt.Sprintf("response vector has %d entries but %d items were administered", len(responses), len(items)),
		}}
	}

	ll := 0.0
	for i, row := range items {
		if len(row) < 3 {
			return 0, &ValidationError{Issues: []string{fmt.Sprintf("item %d has %d parameters, want 3", i, len(row))}}
		}
		p, err := Probability(theta, row[0], row[1], row[2])
		if err != nil {
			return 0, err
		}
		p = clampProbability(p)
		if responses[i] {
			ll += math.Log(p)
		} else {
			ll += math.Log(1 - p)
		}
	}
	return ll, nil
}

// NegativeLogLikelihood returns -LogLikelihood for the same inputs. It
// exists as an adapter for minimization-style optimizers and is called once
// per optimizer iteration, so it allocates nothing beyond the call itself.
func NegativeLogLikelihood(theta float64, responses []bool, items [][]float64) (float64, error) {
	ll, err := LogLikelihood(theta, responses, items)
	if err != nil {
		return 0, err
	}
	return -ll, nil
}

func clampProbability(p float64) float64 {
	if p < probEpsilon {
		return probEpsilon
	}
	if p > 1-probEpsilon {
		return 1 - probEpsilon
	}
	return p
}
