package models

// ── Pilot Item Drafting ──────────────────────────────────

// DraftItemsRequest asks the authoring component to draft pilot items for a
// bank. Drafted items get provisional parameters inside the requested
// difficulty band and must be calibrated before their estimates mean much.
type DraftItemsRequest struct {
	BankID int64          `json:"bank_id"`
	Band   DifficultyBand `json:"band"`
	Topic  string         `json:"topic,omitempty"`
	Count  int            `json:"count"`
}

type DraftItemsResponse struct {
	Items        []Item `json:"items"`
	ModelUsed    string `json:"model_used"`
	PromptTokens int    `json:"prompt_tokens"`
	OutputTokens int    `json:"output_tokens"`
}
