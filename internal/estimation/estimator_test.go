package estimation

import (
	"errors"
	"math"
	"testing"

	"github.com/adaptest/backend/internal/irt"
)

// A ten-item fixed form with difficulties spread across the scale.
var formItems = [][]float64{
	{1.4, -2.5, 0},
	{1.2, -2.0, 0},
	{1.5, -1.5, 0},
	{1.3, -1.0, 0},
	{1.6, -0.5, 0},
	{1.4, 0.0, 0},
	{1.5, 0.5, 0},
	{1.2, 1.0, 0},
	{1.3, 1.5, 0},
	{1.4, 2.0, 0},
}

func TestEstimateThetaRecoversMidScale(t *testing.T) {
	// Correct on everything easier than theta=0.5 and wrong on the rest,
	// the deterministic response pattern of a mid-scale examinee.
	responses := make([]bool, len(formItems))
	for i, row := range formItems {
		responses[i] = row[1] < 0.5
	}

	est, err := EstimateTheta(responses, formItems)
	if err != nil {
		t.Fatalf("EstimateTheta returned error: %v", err)
	}
	if est.Theta < -0.5 || est.Theta > 1.5 {
		t.Errorf("EstimateTheta = %g, want near the easy/hard crossover at 0.5", est.Theta)
	}
	if est.Iterations == 0 {
		t.Error("EstimateTheta reported zero iterations")
	}
}

func TestEstimateThetaBeatsGridCandidates(t *testing.T) {
	responses := []bool{true, true, true, true, false, true, false, false, false, false}

	est, err := EstimateTheta(responses, formItems)
	if err != nil {
		t.Fatalf("EstimateTheta returned error: %v", err)
	}

	for theta := ThetaMin; theta <= ThetaMax; theta += 0.1 {
		ll, err := irt.LogLikelihood(theta, responses, formItems)
		if err != nil {
			t.Fatalf("LogLikelihood(%g) returned error: %v", theta, err)
		}
		if ll > est.LogLik+1e-6 {
			t.Errorf("grid candidate theta=%g has log-likelihood %g above estimate's %g", theta, ll, est.LogLik)
		}
	}
}

func TestEstimateThetaDegenerateVectorsHitBounds(t *testing.T) {
	allCorrect := make([]bool, len(formItems))
	for i := range allCorrect {
		allCorrect[i] = true
	}
	est, err := EstimateTheta(allCorrect, formItems)
	if err != nil {
		t.Fatalf("EstimateTheta on all-correct returned error: %v", err)
	}
	if est.Theta < ThetaMax-0.5 {
		t.Errorf("all-correct estimate = %g, want near upper bound %g", est.Theta, ThetaMax)
	}

	allWrong := make([]bool, len(formItems))
	est, err = EstimateTheta(allWrong, formItems)
	if err != nil {
		t.Fatalf("EstimateTheta on all-wrong returned error: %v", err)
	}
	if est.Theta > ThetaMin+0.5 {
		t.Errorf("all-wrong estimate = %g, want near lower bound %g", est.Theta, ThetaMin)
	}
}

func TestEstimateThetaOrdering(t *testing.T) {
	// More correct answers must never lower the estimate.
	prev := math.Inf(-1)
	for correct := 0; correct <= len(formItems); correct++ {
		responses := make([]bool, len(formItems))
		for i := 0; i < correct; i++ {
			responses[i] = true
		}
		est, err := EstimateTheta(responses, formItems)
		if err != nil {
			t.Fatalf("EstimateTheta with %d correct returned error: %v", correct, err)
		}
		if est.Theta < prev {
			t.Errorf("estimate with %d correct (%g) below estimate with %d correct (%g)", correct, est.Theta, correct-1, prev)
		}
		prev = est.Theta
	}
}

func TestEstimateThetaLengthMismatch(t *testing.T) {
	_, err := EstimateTheta([]bool{true}, formItems)
	var ve *irt.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("EstimateTheta with mismatched lengths returned %v, want *irt.ValidationError", err)
	}
}
