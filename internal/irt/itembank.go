package irt

import "fmt"

// Item parameter matrix column order: discrimination (a), difficulty (b),
// pseudo-guessing (c).
const (
	ColDiscrimination = 0
	ColDifficulty     = 1
	ColGuessing       = 2
)

// NormalizeItemBank expands an n×k item matrix (k in {1,2,3}) to the
// standard n×3 layout. Column semantics are inferred from column count
// alone:
//
//	k=1: difficulty only (1PL), a=1 prepended and c=0 appended
//	k=2: discrimination and difficulty (2PL), c=0 appended
//	k=3: already standard, passed through unchanged
//
// Matrices wider than 3 columns also pass through unchanged; ValidateItemBank
// warns about them. An ambiguous 2-column matrix intended as (b, c) cannot
// be detected; the column-count convention is a modeling assumption.
func NormalizeItemBank(items [][]float64) ([][]float64, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Issues: []string{"item matrix has no rows"}}
	}

	width := len(items[0])
	for i, row := range items {
		if len(row) != width {
			return nil, &ValidationError{Issues: []string{
				fmt.Sprintf("item matrix is ragged: row %d has %d columns, row 0 has %d", i, len(row), width),
			}}
		}
	}

	switch width {
	case 0:
		return nil, &ValidationError{Issues: []string{"item matrix has no columns"}}
	case 1:
		out := make([][]float64, len(items))
		for i, row := range items {
			out[i] = []float64{1, row[0], 0}
		}
		return out, nil
	case 2:
		out := make([][]float64, len(items))
		for i, row := range items {
			out[i] = []float64{row[0], row[1], 0}
		}
		return out, nil
	default:
		return items, nil
	}
}

// BankReport is the outcome of ValidateItemBank. Violations make the bank
// unusable for the logistic model; warnings do not. The caller decides
// whether violations are fatal (Err) or merely logged.
type BankReport struct {
	Warnings   []string
	Violations []string
}

// OK reports whether the bank passed validation without violations.
func (r *BankReport) OK() bool {
	return len(r.Violations) == 0
}

// Err returns a *ValidationError built from the accumulated violations, or
// nil when the bank is valid. Warnings never contribute to the error.
func (r *BankReport) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Issues: r.Violations}
}

// ValidateItemBank checks that an item matrix conforms to the n×3 standard:
// at least one row, exactly three columns, a >= 0 and 0 <= c <= 1 per row.
// Extra columns are tolerated with a warning, since downstream bookkeeping
// tends to append columns to the matrix. Missing columns are violations
// naming the absent parameters. The discrimination and guessing columns are
// checked independently.
func ValidateItemBank(items [][]float64) *BankReport {
	report := &BankReport{}

	if len(items) == 0 {
		report.Violations = append(report.Violations, "item matrix has no rows")
		return report
	}

	width := len(items[0])
	for i, row := range items {
		if len(row) != width {
			report.Violations = append(report.Violations,
				fmt.Sprintf("item matrix is ragged: row %d has %d columns, row 0 has %d", i, len(row), width))
			return report
		}
	}

	switch {
	case width > 3:
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("item matrix has %d columns; columns beyond (a, b, c) are ignored by the model", width))
	case width == 1:
		report.Violations = append(report.Violations,
			"item matrix has no discrimination or pseudo-guessing parameter columns")
		return report
	case width == 2:
		report.Violations = append(report.Violations,
			"item matrix has no pseudo-guessing parameter column")
		return report
	}

	for i, row := range items {
		if row[ColDiscrimination] < 0 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("item %d has discrimination %g < 0", i, row[ColDiscrimination]))
		}
		if row[ColGuessing] < 0 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("item %d has pseudo-guessing %g < 0", i, row[ColGuessing]))
		}
		if row[ColGuessing] > 1 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("item %d has pseudo-guessing %g > 1", i, row[ColGuessing]))
		}
	}

	return report
}
