package irt

import (
	"fmt"
	"strings"
)

// NumericOverflowError reports exponential saturation inside the logistic
// model. It carries the full input tuple so a failed optimizer iteration
// can be diagnosed without reproducing the call.
type NumericOverflowError struct {
	Theta float64
	A     float64
	B     float64
	C     float64
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("logistic overflow: exp argument out of range for theta=%g a=%g b=%g c=%g",
		e.Theta, e.A, e.B, e.C)
}

// DomainError reports a division or logarithm singularity detected at the
// point of computation (c=1, P=0, non-positive test information).
type DomainError struct {
	Op     string
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// ValidationError reports shape or range problems detected before any
// computation proceeds.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Issues, "; "))
}
