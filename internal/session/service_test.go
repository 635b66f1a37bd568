package session

import (
	"errors"
	"testing"

	"github.com/adaptest/backend/internal/models"
)

func TestAlignResponsesReordersByAdministration(t *testing.T) {
	administered := []int64{10, 20, 30}
	// Recorded out of order: the examinee answered the last item first.
	responses := []models.SessionResponse{
		{ItemID: 30, Position: 0, Correct: true},
		{ItemID: 10, Position: 1, Correct: false},
		{ItemID: 20, Position: 2, Correct: true},
	}

	vector, correct, err := alignResponses(administered, responses)
	if err != nil {
		t.Fatalf("alignResponses returned error: %v", err)
	}
	want := []bool{false, true, true}
	for i := range want {
		if vector[i] != want[i] {
			t.Errorf("vector[%d] = %v, want %v", i, vector[i], want[i])
		}
	}
	if correct != 2 {
		t.Errorf("correct = %d, want 2", correct)
	}
}

func TestAlignResponsesMissingItem(t *testing.T) {
	administered := []int64{10, 20}
	responses := []models.SessionResponse{
		{ItemID: 10, Position: 0, Correct: true},
	}

	_, _, err := alignResponses(administered, responses)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("alignResponses with missing item returned %v, want ErrIncomplete", err)
	}
}
