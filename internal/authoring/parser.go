package authoring

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DraftBatch struct {
	Items []DraftItem `json:"items"`
}

type DraftItem struct {
	Stem            string        `json:"stem"`
	Choices         []DraftChoice `json:"choices"`
	CorrectAnswerID string        `json:"correct_answer_id"`
}

type DraftChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) (*DraftBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch DraftBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validChoiceIDs = map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}

func validateBatch(batch *DraftBatch) error {
	var errs []string

	if len(batch.Items) == 0 {
		return &ValidationError{Errors: []string{"no items in batch"}}
	}

	for i, item := range batch.Items {
		num := i + 1

		if item.Stem == "" {
			errs = append(errs, fmt.Sprintf("item %d: empty stem", num))
		}

		if len(item.Choices) != 5 {
			errs = append(errs, fmt.Sprintf("item %d: expected 5 choices, got %d", num, len(item.Choices)))
			continue
		}

		expectedIDs := []string{"A", "B", "C", "D", "E"}
		for j, c := range item.Choices {
			if c.ID != expectedIDs[j] {
				errs = append(errs, fmt.Sprintf("item %d: choice %d has id %q, expected %q", num, j+1, c.ID, expectedIDs[j]))
			}
			if c.Text == "" {
				errs = append(errs, fmt.Sprintf("item %d: choice %s has empty text", num, expectedIDs[j]))
			}
		}

		if !validChoiceIDs[item.CorrectAnswerID] {
			errs = append(errs, fmt.Sprintf("item %d: invalid correct_answer_id %q", num, item.CorrectAnswerID))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
