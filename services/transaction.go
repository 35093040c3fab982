package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/finance-api/models"
	"github.com/LovationAdmin/finance-api/utils"

	"github.com/google/uuid"
)

const transactionColumns = `
	t.id, t.title, t.amount, t.date, t.note, t.type, t.user_id, t.category_id, t.created_at, t.updated_at,
	c.id, c.name, c.type`

type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		t    models.Transaction
		note sql.NullString
		cat  models.CategoryRef
	)
	err := row.Scan(&t.ID, &t.Title, &t.Amount, &t.Date, &note, &t.Type, &t.UserID, &t.CategoryID,
		&t.CreatedAt, &t.UpdatedAt, &cat.ID, &cat.Name, &cat.Type)
	if err != nil {
		return t, err
	}
	if note.Valid {
		t.Note = &note.String
	}
	t.Category = &cat
	return t, nil
}

// List returns matching transactions, newest first. limit <= 0 means no limit.
func (s *TransactionService) List(ctx context.Context, f TransactionFilter, limit int) ([]models.Transaction, error) {
	w := f.where("t")
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		INNER JOIN transaction_categories c ON c.id = t.category_id` + w.whereSQL() + `
		ORDER BY t.date DESC, t.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + w.next(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetByID loads one transaction with its category.
func (s *TransactionService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		INNER JOIN transaction_categories c ON c.id = t.category_id
		WHERE t.id = $1`

	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// Create records a transaction.
func (s *TransactionService) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if strings.TrimSpace(req.Title) == "" || req.Amount == nil || req.Date == "" || req.Type == "" ||
		req.UserID == "" || req.CategoryID == "" {
		return nil, invalid("missing required fields")
	}
	if !req.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}
	if !req.Type.Valid() {
		return nil, invalid("invalid type, must be INCOME or EXPENSE")
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, invalid("invalid date %q", req.Date)
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	query := `
		INSERT INTO transactions (id, title, amount, date, note, type, user_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		id, strings.TrimSpace(req.Title), *req.Amount, date, nullString(req.Note), string(req.Type),
		req.UserID, req.CategoryID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Update applies only the fields present in req.
func (s *TransactionService) Update(ctx context.Context, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	if req.ID == "" {
		return nil, invalid("missing id")
	}

	set := &clauseBuilder{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, invalid("title cannot be empty")
		}
		set.add("title = $%d", strings.TrimSpace(*req.Title))
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, invalid("amount must be greater than zero")
		}
		set.add("amount = $%d", *req.Amount)
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, invalid("invalid date %q", *req.Date)
		}
		set.add("date = $%d", date)
	}
	if req.Note != nil {
		set.add("note = $%d", nullString(req.Note))
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, invalid("invalid type, must be INCOME or EXPENSE")
		}
		set.add("type = $%d", string(*req.Type))
	}
	if req.CategoryID != nil {
		set.add("category_id = $%d", *req.CategoryID)
	}
	set.add("updated_at = $%d", time.Now().UTC())

	query := `UPDATE transactions SET ` + set.join(", ") + ` WHERE id = ` + set.next(req.ID)
	res, err := s.db.ExecContext(ctx, query, set.args...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if err := expectRow(res, "transaction", req.ID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, req.ID)
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("missing id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return expectRow(res, "transaction", id)
}

// nullString stores empty notes as NULL.
func nullString(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
