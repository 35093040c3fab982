package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// aggregateConcurrency bounds the per-budget SUM queries issued for one request.
const aggregateConcurrency = 4

const budgetColumns = `
	b.id, b.user_id, b.category_id, b.amount, b.month, b.year, b.created_at, b.updated_at,
	c.id, c.name, c.type`

type BudgetService struct {
	db  *sql.DB
	agg *Aggregator
}

func NewBudgetService(db *sql.DB, agg *Aggregator) *BudgetService {
	return &BudgetService{db: db, agg: agg}
}

// BudgetInput carries the writable fields of a budget.
type BudgetInput struct {
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Month      int
	Year       int
}

func scanBudget(row rowScanner) (models.Budget, error) {
	var (
		b   models.Budget
		cat models.CategoryRef
	)
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Type)
	if err != nil {
		return b, err
	}
	b.Category = &cat
	return b, nil
}

func (s *BudgetService) query(ctx context.Context, f BudgetFilter) ([]models.Budget, error) {
	w := f.where("b")
	query := `SELECT ` + budgetColumns + `
		FROM budgets b
		INNER JOIN transaction_categories c ON c.id = b.category_id` + w.whereSQL() + `
		ORDER BY b.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// spentPerBudget computes, concurrently, the expenses counted against each budget's own period.
func (s *BudgetService) spentPerBudget(ctx context.Context, budgets []models.Budget) ([]PeriodTotals, error) {
	totals := make([]PeriodTotals, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregateConcurrency)
	for i := range budgets {
		b := budgets[i]
		g.Go(func() error {
			categoryID := b.CategoryID
			t, err := s.agg.ComputePeriodTotals(gctx, b.UserID, &categoryID, Period{Month: b.Month, Year: b.Year}, b.Amount)
			if err != nil {
				return fmt.Errorf("budget %s: %w", b.ID, err)
			}
			totals[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}

// List returns the budgets matching f, each with used and remaining attached.
func (s *BudgetService) List(ctx context.Context, f BudgetFilter) ([]models.BudgetWithUsage, error) {
	budgets, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	totals, err := s.spentPerBudget(ctx, budgets)
	if err != nil {
		return nil, err
	}

	out := make([]models.BudgetWithUsage, len(budgets))
	for i, b := range budgets {
		out[i] = models.BudgetWithUsage{Budget: b, Used: totals[i].Used, Remaining: totals[i].Remaining}
	}
	return out, nil
}

// ListWithProgress is List for the dashboard: spent, remaining and progress.
func (s *BudgetService) ListWithProgress(ctx context.Context, f BudgetFilter) ([]models.BudgetProgress, error) {
	budgets, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	totals, err := s.spentPerBudget(ctx, budgets)
	if err != nil {
		return nil, err
	}

	out := make([]models.BudgetProgress, len(budgets))
	for i, b := range budgets {
		out[i] = models.BudgetProgress{
			Budget:    b,
			Spent:     totals[i].Used,
			Remaining: totals[i].Remaining,
			Progress:  totals[i].Progress,
		}
	}
	return out, nil
}

// GetByID loads one budget with its category.
func (s *BudgetService) GetByID(ctx context.Context, id string) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + `
		FROM budgets b
		INNER JOIN transaction_categories c ON c.id = b.category_id
		WHERE b.id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

// FindByPeriod returns the budget for (user, category, period), or nil when there is none.
func (s *BudgetService) FindByPeriod(ctx context.Context, userID, categoryID string, p Period) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, amount, month, year, created_at, updated_at
		FROM budgets
		WHERE user_id = $1 AND category_id = $2 AND month = $3 AND year = $4
	`
	var b models.Budget
	err := s.db.QueryRowContext(ctx, query, userID, categoryID, p.Month, p.Year).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find budget by period: %w", err)
	}
	return &b, nil
}

func validateBudget(in BudgetInput) (Period, error) {
	if in.CategoryID == "" || in.Month == 0 || in.Year == 0 {
		return Period{}, invalid("missing required fields")
	}
	if in.Amount.IsNegative() {
		return Period{}, invalid("amount cannot be negative")
	}
	return NewPeriod(in.Month, in.Year)
}

// Create inserts a budget. A second budget for the same user, category and period is a conflict;
// the lookup only produces the friendly error, the unique index is what guarantees it.
func (s *BudgetService) Create(ctx context.Context, in BudgetInput) (*models.Budget, error) {
	if in.UserID == "" {
		return nil, invalid("missing required fields")
	}
	p, err := validateBudget(in)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("amount must be greater than zero")
	}

	existing, err := s.FindByPeriod(ctx, in.UserID, in.CategoryID, p)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBudgetConflict
	}

	now := time.Now().UTC()
	budget := &models.Budget{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      p.Month,
		Year:       p.Year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, month, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Month, budget.Year,
		budget.CreatedAt, budget.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrBudgetConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return budget, nil
}

// Update changes amount, category and period of a budget. Moving onto the period of
// another budget of the same user is a conflict; keeping its own period is not.
func (s *BudgetService) Update(ctx context.Context, id string, in BudgetInput) (*models.Budget, error) {
	if id == "" {
		return nil, invalid("missing budget id")
	}

	p, err := validateBudget(in)
	if err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.FindByPeriod(ctx, current.UserID, in.CategoryID, p)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != current.ID {
		return nil, ErrBudgetConflict
	}

	query := `
		UPDATE budgets
		SET amount = $1, category_id = $2, month = $3, year = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := s.db.ExecContext(ctx, query, in.Amount, in.CategoryID, p.Month, p.Year, time.Now().UTC(), id)
	if isUniqueViolation(err) {
		return nil, ErrBudgetConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	if err := expectRow(res, "budget", id); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a budget.
func (s *BudgetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return invalid("missing budget id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return expectRow(res, "budget", id)
}
