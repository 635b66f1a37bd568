package itembank

import (
	"database/sql"
	"fmt"

	"github.com/adaptest/backend/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Bank Management ────────────────────────────────────

// CreateBank inserts the bank and its normalized parameter rows in one
// transaction. Row order becomes the item position.
func (s *Store) CreateBank(name, description string, matrix [][]float64, source models.ItemSource) (*models.ItemBank, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create bank: %w", err)
	}
	defer tx.Rollback()

	var bank models.ItemBank
	err = tx.QueryRow(
		`INSERT INTO item_banks (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, COALESCE(description, ''), created_at`,
		name, nullable(description),
	).Scan(&bank.ID, &bank.Name, &bank.Description, &bank.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO items (bank_id, position, discrimination, difficulty, guessing, source)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range matrix {
		if _, err := stmt.Exec(bank.ID, i, row[0], row[1], row[2], source); err != nil {
			return nil, fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create bank: %w", err)
	}

	bank.ItemCount = len(matrix)
	return &bank, nil
}

func (s *Store) GetBank(bankID int64) (*models.ItemBank, error) {
	var bank models.ItemBank
	err := s.db.QueryRow(
		`SELECT b.id, b.name, COALESCE(b.description, ''), b.created_at,
		        (SELECT COUNT(*) FROM items i WHERE i.bank_id = b.id)
		 FROM item_banks b WHERE b.id = $1`,
		bankID,
	).Scan(&bank.ID, &bank.Name, &bank.Description, &bank.CreatedAt, &bank.ItemCount)
	if err != nil {
		return nil, fmt.Errorf("get bank: %w", err)
	}
	return &bank, nil
}

func (s *Store) ListBanks(limit, offset int) ([]models.ItemBank, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.name, COALESCE(b.description, ''), b.created_at,
		        (SELECT COUNT(*) FROM items i WHERE i.bank_id = b.id)
		 FROM item_banks b
		 ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var banks []models.ItemBank
	for rows.Next() {
		var b models.ItemBank
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.ItemCount); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// ── Item Access ────────────────────────────────────────

const itemColumns = `id, bank_id, position, discrimination, difficulty, guessing, source, stem, created_at`

func (s *Store) GetItems(bankID int64) ([]models.Item, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM items WHERE bank_id = $1 ORDER BY position`, itemColumns),
		bankID,
	)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *Store) GetItem(itemID int64) (*models.Item, error) {
	var item models.Item
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM items WHERE id = $1`, itemColumns),
		itemID,
	).Scan(&item.ID, &item.BankID, &item.Position, &item.Discrimination,
		&item.Difficulty, &item.Guessing, &item.Source, &item.Stem, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// GetItemsByIDs returns the named items in the order the IDs were given.
// A missing ID is an error, since sessions must administer exactly the
// requested list.
func (s *Store) GetItemsByIDs(ids []int64) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM items WHERE id = ANY($1)`, itemColumns),
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("item %d not found", id)
		}
		ordered = append(ordered, item)
	}
	return ordered, nil
}

// AppendItems adds items after the bank's current last position.
func (s *Store) AppendItems(bankID int64, matrix [][]float64, source models.ItemSource, stems []string) ([]models.Item, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin append items: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(position), -1) + 1 FROM items WHERE bank_id = $1`,
		bankID,
	).Scan(&next); err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}

	var saved []models.Item
	for i, row := range matrix {
		var stem *string
		if i < len(stems) && stems[i] != "" {
			stem = &stems[i]
		}

		var item models.Item
		err := tx.QueryRow(
			fmt.Sprintf(`INSERT INTO items (bank_id, position, discrimination, difficulty, guessing, source, stem)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING %s`, itemColumns),
			bankID, next+i, row[0], row[1], row[2], source, stem,
		).Scan(&item.ID, &item.BankID, &item.Position, &item.Discrimination,
			&item.Difficulty, &item.Guessing, &item.Source, &item.Stem, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("append item %d: %w", i, err)
		}
		saved = append(saved, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit append items: %w", err)
	}
	return saved, nil
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.BankID, &item.Position, &item.Discrimination,
			&item.Difficulty, &item.Guessing, &item.Source, &item.Stem, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
