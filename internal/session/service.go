package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adaptest/backend/internal/estimation"
	"github.com/adaptest/backend/internal/irt"
	"github.com/adaptest/backend/internal/itembank"
	"github.com/adaptest/backend/internal/models"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotSessionOwner  = errors.New("session belongs to another examinee")
	ErrSessionClosed    = errors.New("session is not active")
	ErrItemNotInSession = errors.New("item is not part of this session")
	ErrAlreadyAnswered  = errors.New("item already has a recorded response")
	ErrIncomplete       = errors.New("session has unanswered items")
)

type Service struct {
	store *Store
	items *itembank.Store
}

func NewService(store *Store, items *itembank.Store) *Service {
	return &Service{store: store, items: items}
}

// CreateSession opens a session over the explicit item list in the request.
// Item selection policy is the caller's business; the engine only checks
// that the items exist and belong to the named bank.
func (s *Service) CreateSession(userID int64, req models.CreateSessionRequest) (*models.TestSession, error) {
	if len(req.ItemIDs) == 0 {
		return nil, &irt.ValidationError{Issues: []string{"session needs at least one item"}}
	}

	items, err := s.items.GetItemsByIDs(req.ItemIDs)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.BankID != req.BankID {
			return nil, &irt.ValidationError{Issues: []string{
				fmt.Sprintf("item %d belongs to bank %d, not bank %d", item.ID, item.BankID, req.BankID),
			}}
		}
	}

	return s.store.CreateSession(userID, req.BankID, req.ItemIDs)
}

// RecordResponse appends one binary outcome. Responses keep the position at
// which they were recorded; finalization re-aligns them with the
// administered order.
func (s *Service) RecordResponse(sessionID, userID int64, req models.RecordResponseRequest) (*models.SessionResponse, error) {
	sess, err := s.ownedActiveSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	administered, err := s.store.AdministeredItemIDs(sess.ID)
	if err != nil {
		return nil, err
	}
	if !containsID(administered, req.ItemID) {
		return nil, ErrItemNotInSession
	}

	responses, err := s.store.GetResponses(sess.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range responses {
		if r.ItemID == req.ItemID {
			return nil, ErrAlreadyAnswered
		}
	}

	return s.store.RecordResponse(sess.ID, req.ItemID, len(responses), req.Correct)
}

// Finalize estimates the examinee's proficiency from the complete response
// vector and stores the session result: the maximum-likelihood theta plus
// test information, standard error and reliability at that estimate.
func (s *Service) Finalize(sessionID, userID int64) (*models.SessionResult, error) {
	sess, err := s.ownedActiveSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	administered, err := s.store.AdministeredItemIDs(sess.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.GetResponses(sess.ID)
	if err != nil {
		return nil, err
	}
	if len(responses) != len(administered) {
		return nil, fmt.Errorf("%w: %d of %d answered", ErrIncomplete, len(responses), len(administered))
	}

	vector, correct, err := alignResponses(administered, responses)
	if err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByIDs(administered)
	if err != nil {
		return nil, err
	}
	matrix := itembank.ParamMatrix(items)

	est, err := estimation.EstimateTheta(vector, matrix)
	if err != nil {
		return nil, err
	}

	info, err := irt.TestInformation(est.Theta, matrix)
	if err != nil {
		return nil, err
	}
	see, err := irt.StandardError(est.Theta, matrix)
	if err != nil {
		return nil, err
	}
	rel, err := irt.Reliability(est.Theta, matrix)
	if err != nil {
		return nil, err
	}

	result := &models.SessionResult{
		SessionID:         sess.ID,
		Theta:             est.Theta,
		LogLikelihood:     est.LogLik,
		TestInformation:   info,
		StandardError:     see,
		Reliability:       rel,
		ItemsAdministered: len(administered),
		ItemsCorrect:      correct,
	}

	if err := s.store.CompleteSession(sess.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) GetDetail(sessionID, userID int64) (*models.SessionDetailResponse, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrNotSessionOwner
	}

	responses, err := s.store.GetResponses(sess.ID)
	if err != nil {
		return nil, err
	}
	result, err := s.store.GetResult(sess.ID)
	if err != nil {
		return nil, err
	}

	if responses == nil {
		responses = []models.SessionResponse{}
	}
	return &models.SessionDetailResponse{Session: *sess, Responses: responses, Result: result}, nil
}

// ExportRows renders an examinee's results as tabular records matching
// models.ResultExportColumns.
func (s *Service) ExportRows(userID int64) ([][]string, error) {
	results, err := s.store.ListResults(userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(results))
	for _, row := range results {
		rows = append(rows, []string{
			strconv.FormatInt(row.Result.SessionID, 10),
			strconv.FormatInt(row.UserID, 10),
			strconv.FormatInt(row.BankID, 10),
			strconv.Itoa(row.Result.ItemsAdministered),
			strconv.Itoa(row.Result.ItemsCorrect),
			formatFloat(row.Result.Theta),
			formatFloat(row.Result.LogLikelihood),
			formatFloat(row.Result.TestInformation),
			formatFloat(row.Result.StandardError),
			formatFloat(row.Result.Reliability),
			row.Result.CompletedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *Service) ownedActiveSession(sessionID, userID int64) (*models.TestSession, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	if sess.Status != models.SessionActive {
		return nil, ErrSessionClosed
	}
	return sess, nil
}

// alignResponses orders the recorded outcomes by the administered item
// list, so the response vector and the parameter matrix refer to the same
// item at every index. Recording order may differ when an examinee skips
// around.
func alignResponses(administered []int64, responses []models.SessionResponse) ([]bool, int, error) {
	byItem := make(map[int64]bool, len(responses))
	for _, r := range responses {
		byItem[r.ItemID] = r.Correct
	}

	vector := make([]bool, len(administered))
	correct := 0
	for i, itemID := range administered {
		outcome, ok := byItem[itemID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: item %d has no response", ErrIncomplete, itemID)
		}
		vector[i] = outcome
		if outcome {
			correct++
		}
	}
	return vector, correct, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
