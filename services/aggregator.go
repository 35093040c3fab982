package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PeriodTotals are the derived, never persisted figures of a budget.
type PeriodTotals struct {
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  int             `json:"progress"`
}

// Progress is the share of amount already used, rounded half-up and clamped to [0, 100].
// A non-positive amount has no meaningful progress and yields 0.
func Progress(used, amount decimal.Decimal) int {
	if !amount.IsPositive() {
		return 0
	}
	pct := used.Div(amount).Mul(hundred).Round(0).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

// Totals derives remaining and progress from a ceiling and what was used against it.
func Totals(amount, used decimal.Decimal) PeriodTotals {
	return PeriodTotals{
		Used:      used,
		Remaining: amount.Sub(used),
		Progress:  Progress(used, amount),
	}
}

// Aggregator runs the SUM/COUNT queries behind budgets and the dashboard.
type Aggregator struct {
	db *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Sum adds up amounts of the transactions matching f. No match sums to zero.
func (a *Aggregator) Sum(ctx context.Context, f TransactionFilter) (decimal.Decimal, error) {
	w := f.where("t")
	query := `SELECT COALESCE(SUM(t.amount), 0) FROM transactions t` + w.whereSQL()

	var total decimal.Decimal
	if err := a.db.QueryRowContext(ctx, query, w.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	// SQLite sums NUMERIC columns as floating point
	return total.Round(2), nil
}

// Count returns how many transactions match f.
func (a *Aggregator) Count(ctx context.Context, f TransactionFilter) (int, error) {
	w := f.where("t")
	query := `SELECT COUNT(*) FROM transactions t` + w.whereSQL()

	var n int
	if err := a.db.QueryRowContext(ctx, query, w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// SpentInPeriod sums EXPENSE transactions of a user, optionally for one category, within p.
func (a *Aggregator) SpentInPeriod(ctx context.Context, userID string, categoryID *string, p Period) (decimal.Decimal, error) {
	f := TransactionFilter{UserID: userID, CategoryID: categoryID}
	return a.Sum(ctx, f.InPeriod(p).OfType(models.TypeExpense))
}

// ComputePeriodTotals compares what was spent in p against a budget ceiling.
func (a *Aggregator) ComputePeriodTotals(ctx context.Context, userID string, categoryID *string, p Period, amount decimal.Decimal) (PeriodTotals, error) {
	used, err := a.SpentInPeriod(ctx, userID, categoryID, p)
	if err != nil {
		return PeriodTotals{}, err
	}
	return Totals(amount, used), nil
}

// ExpenseByCategory groups a period's expenses per category, largest first.
func (a *Aggregator) ExpenseByCategory(ctx context.Context, userID string, p Period) ([]models.CategoryAmount, error) {
	f := TransactionFilter{UserID: userID}.InPeriod(p).OfType(models.TypeExpense)
	w := f.where("t")
	query := `
		SELECT c.id, c.name, COALESCE(SUM(t.amount), 0) AS total
		FROM transactions t
		INNER JOIN transaction_categories c ON c.id = t.category_id` + w.whereSQL() + `
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.name`

	rows, err := a.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("expense by category: %w", err)
	}
	defer rows.Close()

	out := []models.CategoryAmount{}
	for rows.Next() {
		var ca models.CategoryAmount
		if err := rows.Scan(&ca.CategoryID, &ca.Category, &ca.Amount); err != nil {
			return nil, fmt.Errorf("scan category amount: %w", err)
		}
		ca.Amount = ca.Amount.Round(2)
		out = append(out, ca)
	}
	return out, rows.Err()
}

// MonthlyTotals returns income and expense for each of the n periods ending at last, oldest first.
func (a *Aggregator) MonthlyTotals(ctx context.Context, userID string, last Period, n int) ([]models.MonthlyTotals, error) {
	if n < 1 {
		return []models.MonthlyTotals{}, nil
	}
	first := last.Shift(-(n - 1))
	start, end := first.Start(), last.End()
	f := TransactionFilter{UserID: userID, From: &start, Before: &end}
	w := f.where("t")
	query := `SELECT t.type, t.date, t.amount FROM transactions t` + w.whereSQL()

	rows, err := a.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	out := make([]models.MonthlyTotals, n)
	index := make(map[Period]int, n)
	for i := range out {
		p := first.Shift(i)
		out[i] = models.MonthlyTotals{Month: p.String(), Income: decimal.Zero, Expense: decimal.Zero}
		index[p] = i
	}

	for rows.Next() {
		var (
			kind   models.TransactionType
			date   time.Time
			amount decimal.Decimal
		)
		if err := rows.Scan(&kind, &date, &amount); err != nil {
			return nil, fmt.Errorf("scan monthly row: %w", err)
		}
		i, ok := index[PeriodOf(date)]
		if !ok {
			continue
		}
		amount = amount.Round(2)
		switch kind {
		case models.TypeIncome:
			out[i].Income = out[i].Income.Add(amount)
		case models.TypeExpense:
			out[i].Expense = out[i].Expense.Add(amount)
		}
	}
	return out, rows.Err()
}
