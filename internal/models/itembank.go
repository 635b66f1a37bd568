package models

import "time"

// ItemSource tells calibrated items (parameters estimated from real
// response data) apart from pilot drafts awaiting calibration.
type ItemSource string

const (
	SourceCalibrated ItemSource = "calibrated"
	SourcePilot      ItemSource = "pilot"
)

// DifficultyBand is the coarse target band used when drafting pilot items.
// Calibrated items carry a real-valued difficulty instead.
type DifficultyBand string

const (
	BandEasy   DifficultyBand = "easy"
	BandMedium DifficultyBand = "medium"
	BandHard   DifficultyBand = "hard"
)

var ValidDifficultyBands = map[DifficultyBand]bool{
	BandEasy:   true,
	BandMedium: true,
	BandHard:   true,
}

// ── Core Structs ───────────────────────────────────────

type ItemBank struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item is one row of the bank's parameter matrix plus bookkeeping. The
// (a, b, c) triple is what the logistic model consumes.
type Item struct {
	ID             int64      `json:"id"`
	BankID         int64      `json:"bank_id"`
	Position       int        `json:"position"`
	Discrimination float64    `json:"a"`
	Difficulty     float64    `json:"b"`
	Guessing       float64    `json:"c"`
	Source         ItemSource `json:"source"`
	Stem           *string    `json:"stem,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ── API Request/Response Types ────────────────────────────

// CreateBankRequest ingests a raw n×k parameter matrix. Matrices with 1 or
// 2 columns are expanded to the standard (a, b, c) layout before
// validation. Strict mode turns validation violations into a rejected
// request; otherwise they are logged and the bank is stored as-is.
type CreateBankRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Items       [][]float64 `json:"items"`
	Strict      bool        `json:"strict"`
}

type CreateBankResponse struct {
	Bank       ItemBank `json:"bank"`
	Warnings   []string `json:"warnings,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// BankMetrics reports the precision of a full bank at one theta.
type BankMetrics struct {
	Theta           float64 `json:"theta"`
	TestInformation float64 `json:"test_information"`
	StandardError   float64 `json:"standard_error"`
	Reliability     float64 `json:"reliability"`
}

// ItemCurvePoint is one sample of an item's response or information curve.
type ItemCurvePoint struct {
	Theta       float64 `json:"theta"`
	Probability float64 `json:"probability"`
	Information float64 `json:"information"`
}

type ItemCurveResponse struct {
	Item   Item             `json:"item"`
	Points []ItemCurvePoint `json:"points"`
}
