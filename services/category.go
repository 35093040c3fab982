package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/google/uuid"
)

type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

func validateCategory(name string, kind models.TransactionType, userID string) error {
	if strings.TrimSpace(name) == "" || kind == "" || userID == "" {
		return invalid("missing required fields")
	}
	if !kind.Valid() {
		return invalid("invalid type, must be INCOME or EXPENSE")
	}
	return nil
}

// List returns the categories owned by a user.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.TransactionCategory, error) {
	query := `
		SELECT id, name, type, user_id, created_at, updated_at
		FROM transaction_categories
		WHERE user_id = $1
		ORDER BY created_at, name
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.TransactionCategory{}
	for rows.Next() {
		var c models.TransactionCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Count returns how many categories a user owns.
func (s *CategoryService) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaction_categories WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// GetByID loads one category.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.TransactionCategory, error) {
	query := `
		SELECT id, name, type, user_id, created_at, updated_at
		FROM transaction_categories
		WHERE id = $1
	`
	var c models.TransactionCategory
	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Create creates a category for a user
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.TransactionCategory, error) {
	if err := validateCategory(req.Name, req.Type, req.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &models.TransactionCategory{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		UserID:    req.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO transaction_categories (id, name, type, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name, string(category.Type), category.UserID, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Update renames or retypes a category. A missing id surfaces as ErrNotFound.
func (s *CategoryService) Update(ctx context.Context, req models.UpdateCategoryRequest) (*models.TransactionCategory, error) {
	if req.ID == "" {
		return nil, invalid("missing category id")
	}
	if err := validateCategory(req.Name, req.Type, req.UserID); err != nil {
		return nil, err
	}

	query := `
		UPDATE transaction_categories
		SET name = $1, type = $2, user_id = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := s.db.ExecContext(ctx, query, strings.TrimSpace(req.Name), string(req.Type), req.UserID, time.Now().UTC(), req.ID)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if err := expectRow(res, "category", req.ID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, req.ID)
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("missing category id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM transaction_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return expectRow(res, "category", id)
}

func expectRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s rows affected: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
