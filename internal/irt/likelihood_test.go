package irt

import (
	"errors"
	"math"
	"testing"
)

var likelihoodItems = [][]float64{
	{1.2, -1, 0.1},
	{1.0, 0, 0},
	{1.8, 0.5, 0.2},
	{0.9, 1.2, 0.25},
}

func TestLogLikelihoodLengthMismatch(t *testing.T) {
	_, err := LogLikelihood(0, []bool{true, false}, likelihoodItems)
	if err == nil {
		t.Fatal("LogLikelihood with mismatched lengths did not fail")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
}

func TestLogLikelihoodMatchesManualSum(t *testing.T) {
	responses := []bool{true, false, true, false}
	theta := 0.3

	want := 0.0
	for i, row := range likelihoodItems {
		p, err := Probability(theta, row[0], row[1], row[2])
		if err != nil {
			t.Fatalf("Probability returned error: %v", err)
		}
		if responses[i] {
			want += math.Log(p)
		} else {
			want += math.Log(1 - p)
		}
	}

	got, err := LogLikelihood(theta, responses, likelihoodItems)
	if err != nil {
		t.Fatalf("LogLikelihood returned error: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LogLikelihood = %g, want %g", got, want)
	}
}

func TestNegativeLogLikelihoodIsNegation(t *testing.T) {
	responses := []bool{true, true, false, true}
	for _, theta := range []float64{-2, -0.5, 0, 1.3, 3} {
		ll, err := LogLikelihood(theta, responses, likelihoodItems)
		if err != nil {
			t.Fatalf("LogLikelihood(%g) returned error: %v", theta, err)
		}
		nll, err := NegativeLogLikelihood(theta, responses, likelihoodItems)
		if err != nil {
			t.Fatalf("NegativeLogLikelihood(%g) returned error: %v", theta, err)
		}
		if nll != -ll {
			t.Errorf("NegativeLogLikelihood(%g) = %g, want %g", theta, nll, -ll)
		}
	}
}

func TestLogLikelihoodSaturationStaysFinite(t *testing.T) {
	// At extreme theta the probabilities saturate to 0 or 1 in float64.
	// The clamp policy keeps the objective finite so the optimizer can
	// keep searching.
	responses := []bool{false, false, false, false}
	ll, err := LogLikelihood(40, responses, likelihoodItems)
	if err != nil {
		t.Fatalf("LogLikelihood at theta=40 returned error: %v", err)
	}
	if math.IsInf(ll, 0) || math.IsNaN(ll) {
		t.Errorf("LogLikelihood at theta=40 = %g, want finite", ll)
	}

	responses = []bool{true, true, true, true}
	ll, err = LogLikelihood(-40, responses, likelihoodItems)
	if err != nil {
		t.Fatalf("LogLikelihood at theta=-40 returned error: %v", err)
	}
	if math.IsInf(ll, 0) || math.IsNaN(ll) {
		t.Errorf("LogLikelihood at theta=-40 = %g, want finite", ll)
	}
}

func TestLogLikelihoodPrefersConsistentTheta(t *testing.T) {
	// An examinee who answers easy items correctly and hard ones wrong
	// should be more likely near the middle of the scale than far away.
	items := [][]float64{
		{1.5, -2, 0},
		{1.5, -1, 0},
		{1.5, 1, 0},
		{1.5, 2, 0},
	}
	responses := []bool{true, true, false, false}

	mid, err := LogLikelihood(0, responses, items)
	if err != nil {
		t.Fatalf("LogLikelihood(0) returned error: %v", err)
	}
	for _, theta := range []float64{-3, 3} {
		far, err := LogLikelihood(theta, responses, items)
		if err != nil {
			t.Fatalf("LogLikelihood(%g) returned error: %v", theta, err)
		}
		if far >= mid {
			t.Errorf("LogLikelihood(%g) = %g, want below LogLikelihood(0) = %g", theta, far, mid)
		}
	}
}
