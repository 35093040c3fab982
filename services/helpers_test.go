package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/LovationAdmin/finance-api/config"
	"github.com/LovationAdmin/finance-api/models"

	"github.com/shopspring/decimal"
)

type fixture struct {
	db           *sql.DB
	agg          *Aggregator
	users        *UserService
	categories   *CategoryService
	transactions *TransactionService
	budgets      *BudgetService
	dashboard    *DashboardService
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "finance.db"),
	}
	if err := config.RunMigrations(cfg); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	agg := NewAggregator(db)
	categories := NewCategoryService(db)
	transactions := NewTransactionService(db)
	budgets := NewBudgetService(db, agg)
	return &fixture{
		db:           db,
		agg:          agg,
		users:        NewUserService(db),
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
		dashboard:    NewDashboardService(agg, categories, transactions, budgets),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) user(t *testing.T, email string) string {
	t.Helper()
	u, err := f.users.Create(context.Background(), email, "Test User", "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func (f *fixture) category(t *testing.T, userID, name string, kind models.TransactionType) string {
	t.Helper()
	c, err := f.categories.Create(context.Background(), models.CreateCategoryRequest{Name: name, Type: kind, UserID: userID})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c.ID
}

func (f *fixture) transaction(t *testing.T, userID, categoryID string, kind models.TransactionType, amount, date string) *models.Transaction {
	t.Helper()
	a := dec(amount)
	tx, err := f.transactions.Create(context.Background(), models.CreateTransactionRequest{
		Title:      "tx " + amount,
		Amount:     &a,
		Date:       date,
		Type:       kind,
		UserID:     userID,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}

func (f *fixture) budget(t *testing.T, userID, categoryID, amount string, month, year int) *models.Budget {
	t.Helper()
	b, err := f.budgets.Create(context.Background(), BudgetInput{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     dec(amount),
		Month:      month,
		Year:       year,
	})
	if err != nil {
		t.Fatalf("create budget: %v", err)
	}
	return b
}
