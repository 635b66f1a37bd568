package irt

import (
	"errors"
	"math"
	"testing"
)

func TestProbabilitySymmetryPoint(t *testing.T) {
	got, err := Probability(0, 1, 0, 0)
	if err != nil {
		t.Fatalf("Probability(0,1,0,0) returned error: %v", err)
	}
	if got != 0.5 {
		t.Errorf("Probability(0,1,0,0) = %g, want 0.5", got)
	}
}

func TestProbabilityInflectionAtDifficulty(t *testing.T) {
	// At theta=b the curve crosses (1+c)/2 regardless of a.
	tests := []struct {
		a, b, c float64
	}{
		{1, 0, 0},
		{2.5, 1.3, 0},
		{0.8, -2, 0.25},
		{1.7, 0.4, 0.2},
	}
	for _, tt := range tests {
		got, err := Probability(tt.b, tt.a, tt.b, tt.c)
		if err != nil {
			t.Fatalf("Probability(%g,%g,%g,%g) returned error: %v", tt.b, tt.a, tt.b, tt.c, err)
		}
		want := (1 + tt.c) / 2
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Probability at theta=b with c=%g = %g, want %g", tt.c, got, want)
		}
	}
}

func TestProbabilityBoundsAndMonotonicity(t *testing.T) {
	// P stays inside (c, 1) and increases strictly with theta for a > 0.
	for _, c := range []float64{0, 0.2, 0.5} {
		prev := -1.0
		for theta := -4.0; theta <= 4.0; theta += 0.25 {
			p, err := Probability(theta, 1.5, 0.5, c)
			if err != nil {
				t.Fatalf("Probability(%g,1.5,0.5,%g) returned error: %v", theta, c, err)
			}
			if p <= c || p >= 1 {
				t.Errorf("Probability(%g,1.5,0.5,%g) = %g, want inside (%g, 1)", theta, c, p, c)
			}
			if p <= prev {
				t.Errorf("Probability not strictly increasing at theta=%g (p=%g, prev=%g)", theta, p, prev)
			}
			prev = p
		}
	}
}

func TestProbabilityExtremes(t *testing.T) {
	high, err := Probability(50, 2, 0, 0.2)
	if err != nil {
		t.Fatalf("Probability at high theta returned error: %v", err)
	}
	if high < 0.999 {
		t.Errorf("Probability at theta=50 = %g, want near 1", high)
	}

	low, err := Probability(-50, 2, 0, 0.2)
	if err != nil {
		t.Fatalf("Probability at low theta returned error: %v", err)
	}
	if math.Abs(low-0.2) > 1e-9 {
		t.Errorf("Probability at theta=-50 = %g, want near c=0.2", low)
	}
}

func TestProbabilityOverflowCarriesInputs(t *testing.T) {
	_, err := Probability(-800, 1, 0, 0)
	if err == nil {
		t.Fatal("Probability(-800,1,0,0) did not fail, want overflow error")
	}
	var ofe *NumericOverflowError
	if !errors.As(err, &ofe) {
		t.Fatalf("error is %T, want *NumericOverflowError", err)
	}
	if ofe.Theta != -800 || ofe.A != 1 || ofe.B != 0 || ofe.C != 0 {
		t.Errorf("overflow error carries (%g,%g,%g,%g), want (-800,1,0,0)", ofe.Theta, ofe.A, ofe.B, ofe.C)
	}
}

func TestItemInformationKnownValue(t *testing.T) {
	// a=1, b=0, c=0 at theta=0: 1 * (0.5/1)^2 * 0.5/0.5 = 0.25
	got, err := ItemInformation(0, 1, 0, 0)
	if err != nil {
		t.Fatalf("ItemInformation(0,1,0,0) returned error: %v", err)
	}
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("ItemInformation(0,1,0,0) = %g, want 0.25", got)
	}
}

func TestItemInformationPeaksAtDifficulty(t *testing.T) {
	for _, b := range []float64{-1.5, 0, 2} {
		peak, err := ItemInformation(b, 1.8, b, 0)
		if err != nil {
			t.Fatalf("ItemInformation at theta=b returned error: %v", err)
		}
		for _, delta := range []float64{0.1, 0.5, 1, 2} {
			for _, theta := range []float64{b - delta, b + delta} {
				off, err := ItemInformation(theta, 1.8, b, 0)
				if err != nil {
					t.Fatalf("ItemInformation(%g,1.8,%g,0) returned error: %v", theta, b, err)
				}
				if off >= peak {
					t.Errorf("information at theta=%g (%g) >= peak at b=%g (%g)", theta, off, b, peak)
				}
			}
		}
	}
}

func TestItemInformationSingularGuessing(t *testing.T) {
	_, err := ItemInformation(0, 1, 0, 1)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("ItemInformation with c=1 returned %v, want *DomainError", err)
	}
}

func TestTestInformationIsSumOfItems(t *testing.T) {
	items := [][]float64{
		{1.2, -0.5, 0.1},
		{0.9, 0.3, 0},
		{2.1, 1.1, 0.25},
	}
	theta := 0.4

	want := 0.0
	for _, row := range items {
		info, err := ItemInformation(theta, row[0], row[1], row[2])
		if err != nil {
			t.Fatalf("ItemInformation returned error: %v", err)
		}
		want += info
	}

	got, err := TestInformation(theta, items)
	if err != nil {
		t.Fatalf("TestInformation returned error: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("TestInformation = %g, want sum of item informations %g", got, want)
	}
}

func TestTestInformationEmpty(t *testing.T) {
	got, err := TestInformation(0, nil)
	if err != nil {
		t.Fatalf("TestInformation over empty set returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("TestInformation over empty set = %g, want 0", got)
	}
}

func TestStandardErrorEmptySetFails(t *testing.T) {
	_, err := StandardError(0, nil)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("StandardError over empty set returned %v, want *DomainError", err)
	}
}

func TestStandardErrorKnownValue(t *testing.T) {
	items := [][]float64{{1, 0, 0}}
	// Information at theta=0 is 0.25, so SEE = 1/sqrt(0.25) = 2.
	got, err := StandardError(0, items)
	if err != nil {
		t.Fatalf("StandardError returned error: %v", err)
	}
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("StandardError = %g, want 2", got)
	}
}

func TestReliabilityBelowOneAndCanBeNegative(t *testing.T) {
	// A single weak item has information < 1 at theta=0, so reliability
	// is negative. That is a valid low-quality signal, not an error.
	weak := [][]float64{{1, 0, 0}}
	rel, err := Reliability(0, weak)
	if err != nil {
		t.Fatalf("Reliability returned error: %v", err)
	}
	if rel >= 0 {
		t.Errorf("Reliability of weak test = %g, want negative", rel)
	}

	strong := [][]float64{
		{2, -0.2, 0}, {2, 0, 0}, {2, 0.2, 0}, {2, 0.1, 0}, {2, -0.1, 0},
	}
	rel, err = Reliability(0, strong)
	if err != nil {
		t.Fatalf("Reliability returned error: %v", err)
	}
	if rel >= 1 {
		t.Errorf("Reliability = %g, want < 1", rel)
	}
	if rel <= 0 {
		t.Errorf("Reliability of strong test = %g, want positive", rel)
	}
}
