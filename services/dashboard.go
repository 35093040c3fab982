package services

import (
	"context"

	"github.com/LovationAdmin/finance-api/models"

	"golang.org/x/sync/errgroup"
)

const (
	recentTransactionsLimit = 5
	chartMonths             = 6
)

// DashboardService assembles the dashboard from independent read-only queries.
type DashboardService struct {
	agg          *Aggregator
	categories   *CategoryService
	transactions *TransactionService
	budgets      *BudgetService
}

func NewDashboardService(agg *Aggregator, categories *CategoryService, transactions *TransactionService, budgets *BudgetService) *DashboardService {
	return &DashboardService{agg: agg, categories: categories, transactions: transactions, budgets: budgets}
}

// Get computes the summary of userID for period p. The queries commute, so they run concurrently;
// each goroutine writes only its own field of the result.
func (s *DashboardService) Get(ctx context.Context, userID string, p Period) (*models.Dashboard, error) {
	if userID == "" {
		return nil, invalid("missing userId")
	}

	var (
		d        models.Dashboard
		lifetime = TransactionFilter{UserID: userID}
		monthly  = lifetime.InPeriod(p)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregateConcurrency)

	g.Go(func() (err error) {
		d.IncomeMonth, err = s.agg.Sum(ctx, monthly.OfType(models.TypeIncome))
		return err
	})
	g.Go(func() (err error) {
		d.ExpenseMonth, err = s.agg.Sum(ctx, monthly.OfType(models.TypeExpense))
		return err
	})
	g.Go(func() (err error) {
		d.TotalIncome, err = s.agg.Sum(ctx, lifetime.OfType(models.TypeIncome))
		return err
	})
	g.Go(func() (err error) {
		d.TotalExpense, err = s.agg.Sum(ctx, lifetime.OfType(models.TypeExpense))
		return err
	})
	g.Go(func() (err error) {
		d.TransactionCount, err = s.agg.Count(ctx, monthly)
		return err
	})
	g.Go(func() (err error) {
		d.CategoriesCount, err = s.categories.Count(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.RecentTransactions, err = s.transactions.List(ctx, lifetime, recentTransactionsLimit)
		return err
	})
	g.Go(func() (err error) {
		month, year := p.Month, p.Year
		d.Budgets, err = s.budgets.ListWithProgress(ctx, BudgetFilter{UserID: userID, Month: &month, Year: &year})
		return err
	})
	g.Go(func() (err error) {
		d.ExpenseByCategory, err = s.agg.ExpenseByCategory(ctx, userID, p)
		return err
	})
	g.Go(func() (err error) {
		d.IncomeExpenseChart, err = s.agg.MonthlyTotals(ctx, userID, p, chartMonths)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Balance = d.TotalIncome.Sub(d.TotalExpense)
	return &d, nil
}
