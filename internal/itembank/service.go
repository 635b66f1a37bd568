package itembank

import (
	"fmt"
	"log"

	"github.com/adaptest/backend/internal/irt"
	"github.com/adaptest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// CreateBank normalizes the raw parameter matrix to the (a, b, c) layout,
// validates it, and stores it. In strict mode violations reject the
// request; otherwise they are logged and the bank is stored anyway, with
// the caller accepting responsibility for downstream results.
func (s *Service) CreateBank(req models.CreateBankRequest) (*models.CreateBankResponse, error) {
	matrix, err := irt.NormalizeItemBank(req.Items)
	if err != nil {
		return nil, err
	}

	report := irt.ValidateItemBank(matrix)
	for _, w := range report.Warnings {
		log.Printf("WARN: bank %q: %s", req.Name, w)
	}
	if !report.OK() {
		if req.Strict {
			return nil, report.Err()
		}
		for _, v := range report.Violations {
			log.Printf("WARN: bank %q stored despite violation: %s", req.Name, v)
		}
	}

	bank, err := s.store.CreateBank(req.Name, req.Description, matrix, models.SourceCalibrated)
	if err != nil {
		return nil, err
	}

	return &models.CreateBankResponse{
		Bank:       *bank,
		Warnings:   report.Warnings,
		Violations: report.Violations,
	}, nil
}

func (s *Service) GetBank(bankID int64) (*models.ItemBank, error) {
	return s.store.GetBank(bankID)
}

func (s *Service) ListBanks(limit, offset int) ([]models.ItemBank, error) {
	return s.store.ListBanks(limit, offset)
}

func (s *Service) GetItems(bankID int64) ([]models.Item, error) {
	return s.store.GetItems(bankID)
}

// Metrics evaluates the precision of the whole bank at one theta: test
// information, standard error of estimation, and reliability.
func (s *Service) Metrics(bankID int64, theta float64) (*models.BankMetrics, error) {
	items, err := s.store.GetItems(bankID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("bank %d has no items", bankID)
	}

	matrix := ParamMatrix(items)

	info, err := irt.TestInformation(theta, matrix)
	if err != nil {
		return nil, err
	}
	see, err := irt.StandardError(theta, matrix)
	if err != nil {
		return nil, err
	}
	rel, err := irt.Reliability(theta, matrix)
	if err != nil {
		return nil, err
	}

	return &models.BankMetrics{
		Theta:           theta,
		TestInformation: info,
		StandardError:   see,
		Reliability:     rel,
	}, nil
}

// ItemCurve samples an item's response and information curves on an evenly
// spaced theta grid.
func (s *Service) ItemCurve(itemID int64, from, to float64, points int) (*models.ItemCurveResponse, error) {
	if points < 2 {
		points = 2
	}
	if to <= from {
		return nil, &irt.ValidationError{Issues: []string{fmt.Sprintf("curve range [%g, %g] is empty", from, to)}}
	}

	item, err := s.store.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	step := (to - from) / float64(points-1)
	curve := make([]models.ItemCurvePoint, 0, points)
	for i := 0; i < points; i++ {
		theta := from + float64(i)*step
		p, err := irt.Probability(theta, item.Discrimination, item.Difficulty, item.Guessing)
		if err != nil {
			return nil, err
		}
		info, err := irt.ItemInformation(theta, item.Discrimination, item.Difficulty, item.Guessing)
		if err != nil {
			return nil, err
		}
		curve = append(curve, models.ItemCurvePoint{Theta: theta, Probability: p, Information: info})
	}

	return &models.ItemCurveResponse{Item: *item, Points: curve}, nil
}

// ParamMatrix extracts the n×3 parameter matrix from stored items,
// preserving their order.
func ParamMatrix(items []models.Item) [][]float64 {
	matrix := make([][]float64, len(items))
	for i, item := range items {
		matrix[i] = []float64{item.Discrimination, item.Difficulty, item.Guessing}
	}
	return matrix
}
