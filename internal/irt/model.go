// Package irt implements the Item Response Theory three-parameter logistic
// model: response probability, item and test information, precision metrics,
// and the log-likelihood objective used to estimate examinee proficiency.
//
// Every function is pure and safe for concurrent use; an external optimizer
// may evaluate the likelihood from many goroutines at once.
package irt

import (
	"fmt"
	"math"
)

// maxExpArg is the largest argument for which math.Exp stays finite in
// float64. Beyond it the logistic denominator overflows to +Inf.
const maxExpArg = 709.78

// Probability returns the three-parameter logistic response probability
//
//	P(X=1 | theta) = c + (1-c) / (1 + e^(-a(theta-b)))
//
// where theta is the examinee proficiency, a the item discrimination
// (a > 0), b the item difficulty and c the pseudo-guessing parameter
// (0 <= c <= 1). The curve is strictly increasing in theta, crosses
// (1+c)/2 at theta=b, and approaches c and 1 at the extremes.
//
// A *NumericOverflowError carrying the input tuple is returned when the
// exponential term saturates.
func Probability(theta, a, b, c float64) (float64, error) {
	exponent := -a * (theta - b)
	if exponent > maxExpArg {
		return 0, &NumericOverflowError{Theta: theta, A: a, B: b, C: c}
	}
	p := c + (1-c)/(1+math.Exp(exponent))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, &NumericOverflowError{Theta: theta, A: a, B: b, C: c}
	}
	return p, nil
}

// ItemInformation returns the Fisher information of a single item at theta:
//
//	I(theta) = a^2 * ((P-c)/(1-c))^2 * (1-P)/P
//
// Information peaks at theta=b for c=0. The computation is singular when
// c=1 or when P saturates to 0; both are reported as a *DomainError rather
// than propagating NaN or Inf.
func ItemInformation(theta, a, b, c float64) (float64, error) {
	if c == 1 {
		return 0, &DomainError{Op: "item information", Detail: "pseudo-guessing parameter c=1 makes the item uninformative (division by zero)"}
	}
	p, err := Probability(theta, a, b, c)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, &DomainError{Op: "item information", Detail: fmt.Sprintf("response probability saturated to 0 at theta=%g", theta)}
	}
	r := (p - c) / (1 - c)
	return a * a * r * r * (1 - p) / p, nil
}

// TestInformation returns the sum of item informations over the given
// parameter matrix at theta. The caller restricts the matrix to the
// administered items; nothing is filtered here. An empty matrix yields 0.
func TestInformation(theta float64, items [][]float64) (float64, error) {
	total := 0.0
	for i, row := range items {
		if len(row) < 3 {
			return 0, &ValidationError{Issues: []string{fmt.Sprintf("item %d has %d parameters, want 3", i, len(row))}}
		}
		info, err := ItemInformation(theta, row[0], row[1], row[2])
		if err != nil {
			return 0, err
		}
		total += info
	}
	return total, nil
}

// StandardError returns the standard error of estimation at theta,
// 1/sqrt(I(theta)). Fails with a *DomainError when test information is not
// strictly positive (notably for an empty item set).
func StandardError(theta float64, items [][]float64) (float64, error) {
	info, err := TestInformation(theta, items)
	if err != nil {
		return 0, err
	}
	if info <= 0 {
		return 0, &DomainError{Op: "standard error", Detail: fmt.Sprintf("test information %g is not positive", info)}
	}
	return 1 / math.Sqrt(info), nil
}

// Reliability returns the test reliability at theta, 1 - 1/I(theta). The
// value is always below 1 and legitimately negative when I(theta) < 1; a
// negative reliability is a low-quality signal, not an error, and is never
// clamped. Only I(theta) <= 0 (a division singularity) is a *DomainError.
func Reliability(theta float64, items [][]float64) (float64, error) {
	info, err := TestInformation(theta, items)
	if err != nil {
		return 0, err
	}
	if info <= 0 {
		return 0, &DomainError{Op: "reliability", Detail: fmt.Sprintf("test information %g is not positive", info)}
	}
	return 1 - 1/info, nil
}
