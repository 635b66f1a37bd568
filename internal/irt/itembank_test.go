package irt

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeDifficultyOnly(t *testing.T) {
	got, err := NormalizeItemBank([][]float64{{1.0}, {2.0}})
	if err != nil {
		t.Fatalf("NormalizeItemBank returned error: %v", err)
	}
	want := [][]float64{{1, 1.0, 0}, {1, 2.0, 0}}
	assertMatrixEqual(t, got, want)
}

func TestNormalizeTwoParameter(t *testing.T) {
	got, err := NormalizeItemBank([][]float64{{1.2, 0.5}})
	if err != nil {
		t.Fatalf("NormalizeItemBank returned error: %v", err)
	}
	want := [][]float64{{1.2, 0.5, 0}}
	assertMatrixEqual(t, got, want)
}

func TestNormalizeThreeParameterPassthrough(t *testing.T) {
	in := [][]float64{{1.2, 0.5, 0.2}, {0.8, -1, 0}}
	got, err := NormalizeItemBank(in)
	if err != nil {
		t.Fatalf("NormalizeItemBank returned error: %v", err)
	}
	assertMatrixEqual(t, got, in)
}

func TestNormalizeRejectsEmptyAndRagged(t *testing.T) {
	if _, err := NormalizeItemBank(nil); err == nil {
		t.Error("NormalizeItemBank(nil) did not fail")
	}
	_, err := NormalizeItemBank([][]float64{{1, 2}, {1}})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("NormalizeItemBank on ragged matrix returned %v, want *ValidationError", err)
	}
}

func TestValidateAcceptsGoodBank(t *testing.T) {
	report := ValidateItemBank([][]float64{
		{1.2, -0.5, 0.1},
		{0.9, 0.3, 0},
		{2.1, 1.1, 0.25},
	})
	if !report.OK() {
		t.Errorf("valid bank reported violations: %v", report.Violations)
	}
	if err := report.Err(); err != nil {
		t.Errorf("Err() on valid bank = %v, want nil", err)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("valid bank reported warnings: %v", report.Warnings)
	}
}

func TestValidateRejectsGuessingAboveOne(t *testing.T) {
	report := ValidateItemBank([][]float64{{1, 0, 1.5}})
	if report.OK() {
		t.Fatal("bank with c=1.5 passed validation")
	}
	err := report.Err()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Err() is %T, want *ValidationError", err)
	}
	if !strings.Contains(err.Error(), "pseudo-guessing") {
		t.Errorf("violation %q does not name the pseudo-guessing parameter", err.Error())
	}
}

func TestValidateChecksColumnsIndependently(t *testing.T) {
	// Negative discrimination with a valid guessing parameter, and vice
	// versa: each must be caught on its own column.
	report := ValidateItemBank([][]float64{{-0.5, 0, 0.2}})
	if report.OK() || !strings.Contains(report.Violations[0], "discrimination") {
		t.Errorf("negative discrimination not reported, got %v", report.Violations)
	}

	report = ValidateItemBank([][]float64{{1.5, 0, -0.2}})
	if report.OK() || !strings.Contains(report.Violations[0], "pseudo-guessing") {
		t.Errorf("negative pseudo-guessing not reported, got %v", report.Violations)
	}
}

func TestValidateMissingColumns(t *testing.T) {
	report := ValidateItemBank([][]float64{{0.5}})
	if report.OK() {
		t.Fatal("1-column matrix passed validation")
	}
	if !strings.Contains(report.Violations[0], "discrimination") {
		t.Errorf("1-column violation %q does not name missing parameters", report.Violations[0])
	}

	report = ValidateItemBank([][]float64{{1.1, 0.5}})
	if report.OK() {
		t.Fatal("2-column matrix passed validation")
	}
	if !strings.Contains(report.Violations[0], "pseudo-guessing") {
		t.Errorf("2-column violation %q does not name the missing parameter", report.Violations[0])
	}
}

func TestValidateExtraColumnsWarnOnly(t *testing.T) {
	report := ValidateItemBank([][]float64{{1.2, 0.5, 0.1, 7, 8}})
	if !report.OK() {
		t.Errorf("bank with extra columns reported violations: %v", report.Violations)
	}
	if len(report.Warnings) == 0 {
		t.Error("bank with extra columns produced no warning")
	}
}

func TestValidateEmptyBank(t *testing.T) {
	report := ValidateItemBank(nil)
	if report.OK() {
		t.Fatal("empty bank passed validation")
	}
}

func assertMatrixEqual(t *testing.T, got, want [][]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("matrix has %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d has %d columns, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("matrix[%d][%d] = %g, want %g", i, j, got[i][j], want[i][j])
			}
		}
	}
}
