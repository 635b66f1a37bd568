package authoring

import (
	"context"
	"fmt"
	"log"

	"github.com/adaptest/backend/internal/itembank"
	"github.com/adaptest/backend/internal/models"
)

type Service struct {
	gen   *Generator
	items *itembank.Store
}

func NewService(gen *Generator, items *itembank.Store) *Service {
	return &Service{gen: gen, items: items}
}

// DraftItems drafts pilot items into an existing bank. The engine stores
// the stem for reference and the provisional parameters; delivering the
// full item content to examinees is another system's job.
func (s *Service) DraftItems(ctx context.Context, req models.DraftItemsRequest) (*models.DraftItemsResponse, error) {
	if req.Count <= 0 {
		req.Count = 5
	}
	if req.Count > 10 {
		req.Count = 10
	}

	if _, err := s.items.GetBank(req.BankID); err != nil {
		return nil, fmt.Errorf("bank %d: %w", req.BankID, err)
	}

	batch, llmResp, err := s.gen.DraftItems(ctx, req.Band, req.Topic, req.Count)
	if err != nil {
		return nil, err
	}

	if len(batch.Items) != req.Count {
		log.Printf("WARN: asked for %d drafts, model returned %d", req.Count, len(batch.Items))
	}

	matrix := make([][]float64, len(batch.Items))
	stems := make([]string, len(batch.Items))
	for i, item := range batch.Items {
		a, b, c := ProvisionalParams(req.Band)
		matrix[i] = []float64{a, b, c}
		stems[i] = item.Stem
	}

	saved, err := s.items.AppendItems(req.BankID, matrix, models.SourcePilot, stems)
	if err != nil {
		return nil, err
	}

	resp := &models.DraftItemsResponse{
		Items:     saved,
		ModelUsed: s.gen.ModelName(),
	}
	if llmResp != nil {
		resp.PromptTokens = llmResp.PromptTokens
		resp.OutputTokens = llmResp.OutputTokens
	}
	return resp, nil
}
