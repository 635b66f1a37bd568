package session

import (
	"database/sql"
	"fmt"

	"github.com/adaptest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Session Lifecycle ───────────────────────────────────

// CreateSession opens a session and pins its administered item list in one
// transaction. The list order is the administration order.
func (s *Store) CreateSession(userID, bankID int64, itemIDs []int64) (*models.TestSession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create session: %w", err)
	}
	defer tx.Rollback()

	var sess models.TestSession
	err = tx.QueryRow(
		`INSERT INTO test_sessions (user_id, bank_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, bank_id, status, created_at`,
		userID, bankID, models.SessionActive,
	).Scan(&sess.ID, &sess.UserID, &sess.BankID, &sess.Status, &sess.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO session_items (session_id, item_id, position) VALUES ($1, $2, $3)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare session items: %w", err)
	}
	defer stmt.Close()

	for i, itemID := range itemIDs {
		if _, err := stmt.Exec(sess.ID, itemID, i); err != nil {
			return nil, fmt.Errorf("pin session item %d: %w", itemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create session: %w", err)
	}
	return &sess, nil
}

func (s *Store) GetSession(sessionID int64) (*models.TestSession, error) {
	var sess models.TestSession
	err := s.db.QueryRow(
		`SELECT id, user_id, bank_id, status, created_at, completed_at
		 FROM test_sessions WHERE id = $1`,
		sessionID,
	).Scan(&sess.ID, &sess.UserID, &sess.BankID, &sess.Status, &sess.CreatedAt, &sess.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// AdministeredItemIDs returns the session's pinned item list in
// administration order.
func (s *Store) AdministeredItemIDs(sessionID int64) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT item_id FROM session_items WHERE session_id = $1 ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("administered items: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan administered item: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ── Responses ───────────────────────────────────────────

func (s *Store) RecordResponse(sessionID, itemID int64, position int, correct bool) (*models.SessionResponse, error) {
	var resp models.SessionResponse
	err := s.db.QueryRow(
		`INSERT INTO session_responses (session_id, item_id, position, correct)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, item_id, position, correct, answered_at`,
		sessionID, itemID, position, correct,
	).Scan(&resp.ID, &resp.SessionID, &resp.ItemID, &resp.Position, &resp.Correct, &resp.AnsweredAt)
	if err != nil {
		return nil, fmt.Errorf("record response: %w", err)
	}
	return &resp, nil
}

func (s *Store) GetResponses(sessionID int64) ([]models.SessionResponse, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, item_id, position, correct, answered_at
		 FROM session_responses WHERE session_id = $1 ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get responses: %w", err)
	}
	defer rows.Close()

	var responses []models.SessionResponse
	for rows.Next() {
		var r models.SessionResponse
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ItemID, &r.Position, &r.Correct, &r.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// ── Results ─────────────────────────────────────────────

// CompleteSession stores the result row and flips the session to completed
// atomically.
func (s *Store) CompleteSession(sessionID int64, result *models.SessionResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin complete session: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO session_results
		 (session_id, theta, log_likelihood, test_information, standard_error, reliability, items_administered, items_correct)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING completed_at`,
		sessionID, result.Theta, result.LogLikelihood, result.TestInformation,
		result.StandardError, result.Reliability, result.ItemsAdministered, result.ItemsCorrect,
	).Scan(&result.CompletedAt)
	if err != nil {
		return fmt.Errorf("store result: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE test_sessions SET status = $1, completed_at = $2 WHERE id = $3`,
		models.SessionCompleted, result.CompletedAt, sessionID,
	); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetResult(sessionID int64) (*models.SessionResult, error) {
	var res models.SessionResult
	err := s.db.QueryRow(
		`SELECT session_id, theta, log_likelihood, test_information, standard_error, reliability,
		        items_administered, items_correct, completed_at
		 FROM session_results WHERE session_id = $1`,
		sessionID,
	).Scan(&res.SessionID, &res.Theta, &res.LogLikelihood, &res.TestInformation,
		&res.StandardError, &res.Reliability, &res.ItemsAdministered, &res.ItemsCorrect, &res.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return &res, nil
}

// ResultExportRow pairs a result with its session for the tabular export.
type ResultExportRow struct {
	Result models.SessionResult
	UserID int64
	BankID int64
}

func (s *Store) ListResults(userID int64) ([]ResultExportRow, error) {
	rows, err := s.db.Query(
		`SELECT r.session_id, r.theta, r.log_likelihood, r.test_information, r.standard_error,
		        r.reliability, r.items_administered, r.items_correct, r.completed_at,
		        t.user_id, t.bank_id
		 FROM session_results r
		 JOIN test_sessions t ON t.id = r.session_id
		 WHERE t.user_id = $1
		 ORDER BY r.completed_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []ResultExportRow
	for rows.Next() {
		var row ResultExportRow
		if err := rows.Scan(&row.Result.SessionID, &row.Result.Theta, &row.Result.LogLikelihood,
			&row.Result.TestInformation, &row.Result.StandardError, &row.Result.Reliability,
			&row.Result.ItemsAdministered, &row.Result.ItemsCorrect, &row.Result.CompletedAt,
			&row.UserID, &row.BankID); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
