package authoring

import (
	"fmt"

	"github.com/adaptest/backend/internal/models"
)

var bandGuidance = map[models.DifficultyBand]string{
	models.BandEasy: `
DIFFICULTY RULES (easy):
- One concept, one step. A prepared examinee should answer in under 30 seconds
- No deliberately tempting distractors; wrong answers come from obvious slips
- Plain language, small numbers, no unit conversions`,

	models.BandMedium: `
DIFFICULTY RULES (medium):
- Two to three steps, or one step with a non-obvious setup
- At least two distractors must correspond to plausible intermediate mistakes
- Moderate arithmetic; a single conversion or rearrangement is fine`,

	models.BandHard: `
DIFFICULTY RULES (hard):
- Multi-step reasoning where the solution path itself must be found
- Every distractor corresponds to a specific, realistic wrong turn
- Combine concepts; avoid difficulty that comes only from tedious arithmetic`,
}

func SystemPrompt() string {
	return `You are an experienced item writer for a standardized quantitative-reasoning assessment. You draft original multiple-choice items that will be piloted and statistically calibrated before operational use.

Every item you draft must:
- Stand alone: no external figures, tables, or shared context
- Have exactly five answer choices labeled A through E
- Have exactly one defensibly correct answer
- Avoid trick wording; difficulty must come from the underlying reasoning

Respond with JSON only. No prose before or after the JSON object.`
}

// BuildDraftPrompt assembles the user prompt for one drafting request.
func BuildDraftPrompt(band models.DifficultyBand, topic string, count int) string {
	guidance := bandGuidance[band]

	topicLine := "Choose varied topics across quantitative reasoning."
	if topic != "" {
		topicLine = fmt.Sprintf("All items must be about: %s.", topic)
	}

	return fmt.Sprintf(`Draft %d multiple-choice items at %s difficulty.
%s
%s

Return JSON in exactly this shape:
{
  "items": [
    {
      "stem": "the full question text",
      "choices": [
        {"id": "A", "text": "..."},
        {"id": "B", "text": "..."},
        {"id": "C", "text": "..."},
        {"id": "D", "text": "..."},
        {"id": "E", "text": "..."}
      ],
      "correct_answer_id": "A"
    }
  ]
}

Vary the position of the correct answer across items.`, count, band, topicLine, guidance)
}
