package models

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// ── Core Structs ───────────────────────────────────────

// TestSession is one administration of a fixed item list to one examinee.
// Which items make up the list is the caller's decision; the engine only
// scores what it is given.
type TestSession struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	BankID      int64         `json:"bank_id"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// SessionResponse is one recorded binary outcome. Position preserves the
// administration order so the response vector and the item matrix stay
// aligned.
type SessionResponse struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	ItemID     int64     `json:"item_id"`
	Position   int       `json:"position"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// SessionResult holds the scalar metrics of a finalized session: the
// maximum-likelihood proficiency estimate and the precision of the
// administered form at that estimate.
type SessionResult struct {
	SessionID         int64     `json:"session_id"`
	Theta             float64   `json:"theta"`
	LogLikelihood     float64   `json:"log_likelihood"`
	TestInformation   float64   `json:"test_information"`
	StandardError     float64   `json:"standard_error"`
	Reliability       float64   `json:"reliability"`
	ItemsAdministered int       `json:"items_administered"`
	ItemsCorrect      int       `json:"items_correct"`
	CompletedAt       time.Time `json:"completed_at"`
}

// ResultExportColumns is the fixed header of the tabular results export.
// The order is part of the export contract; treat the slice as immutable.
var ResultExportColumns = []string{
	"session_id",
	"user_id",
	"bank_id",
	"items_administered",
	"items_correct",
	"theta",
	"log_likelihood",
	"test_information",
	"standard_error",
	"reliability",
	"completed_at",
}

// ── API Request/Response Types ────────────────────────────

// CreateSessionRequest opens a session over an explicit, ordered item list.
type CreateSessionRequest struct {
	BankID  int64   `json:"bank_id"`
	ItemIDs []int64 `json:"item_ids"`
}

type RecordResponseRequest struct {
	ItemID  int64 `json:"item_id"`
	Correct bool  `json:"correct"`
}

type SessionDetailResponse struct {
	Session   TestSession       `json:"session"`
	Responses []SessionResponse `json:"responses"`
	Result    *SessionResult    `json:"result,omitempty"`
}
