package services

import (
	"context"
	"testing"

	"github.com/LovationAdmin/finance-api/models"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		used   string
		amount string
		want   int
	}{
		{"half used", "50", "100", 50},
		{"over budget is capped", "150", "100", 100},
		{"nothing used", "0", "100", 0},
		{"zero amount", "10", "0", 0},
		{"negative amount", "10", "-5", 0},
		{"rounds half up", "1", "200", 1},
		{"rounds down", "1", "3", 33},
		{"rounds up", "2", "3", 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(dec(tt.used), dec(tt.amount)); got != tt.want {
				t.Errorf("Progress(%s, %s) = %d, want %d", tt.used, tt.amount, got, tt.want)
			}
		})
	}
}

func TestTotalsRemainingMayBeNegative(t *testing.T) {
	got := Totals(dec("100"), dec("150"))
	if !got.Remaining.Equal(dec("-50")) {
		t.Errorf("Remaining = %s, want -50", got.Remaining)
	}
	if got.Progress != 100 {
		t.Errorf("Progress = %d, want 100", got.Progress)
	}
}

func TestComputePeriodTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	rent := f.category(t, alice, "Rent", models.TypeExpense)
	salary := f.category(t, alice, "Salary", models.TypeIncome)
	bobFood := f.category(t, bob, "Food", models.TypeExpense)

	f.transaction(t, alice, food, models.TypeExpense, "30", "2024-03-01")
	f.transaction(t, alice, food, models.TypeExpense, "20.50", "2024-03-31T23:59:59Z")
	f.transaction(t, alice, food, models.TypeExpense, "999", "2024-04-01T00:00:00Z")
	f.transaction(t, alice, food, models.TypeExpense, "999", "2024-02-29T23:59:59Z")
	f.transaction(t, alice, rent, models.TypeExpense, "700", "2024-03-05")
	f.transaction(t, alice, salary, models.TypeIncome, "3000", "2024-03-10")
	f.transaction(t, bob, bobFood, models.TypeExpense, "500", "2024-03-10")

	march := Period{Month: 3, Year: 2024}

	got, err := f.agg.ComputePeriodTotals(ctx, alice, &food, march, dec("100"))
	if err != nil {
		t.Fatalf("ComputePeriodTotals: %v", err)
	}
	if !got.Used.Equal(dec("50.5")) {
		t.Errorf("Used = %s, want 50.5", got.Used)
	}
	if !got.Remaining.Equal(dec("49.5")) {
		t.Errorf("Remaining = %s, want 49.5", got.Remaining)
	}
	if got.Progress != 51 {
		t.Errorf("Progress = %d, want 51", got.Progress)
	}

	all, err := f.agg.ComputePeriodTotals(ctx, alice, nil, march, dec("1000"))
	if err != nil {
		t.Fatalf("ComputePeriodTotals without category: %v", err)
	}
	if !all.Used.Equal(dec("750.5")) {
		t.Errorf("Used across categories = %s, want 750.5", all.Used)
	}
}

func TestComputePeriodTotalsEmptyPeriod(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)

	got, err := f.agg.ComputePeriodTotals(context.Background(), alice, &food, Period{Month: 7, Year: 2024}, dec("200"))
	if err != nil {
		t.Fatalf("ComputePeriodTotals: %v", err)
	}
	if !got.Used.IsZero() || !got.Remaining.Equal(dec("200")) || got.Progress != 0 {
		t.Errorf("got %+v, want used 0, remaining 200, progress 0", got)
	}
}

func TestExpenseByCategoryAndMonthlyTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	rent := f.category(t, alice, "Rent", models.TypeExpense)
	salary := f.category(t, alice, "Salary", models.TypeIncome)

	f.transaction(t, alice, food, models.TypeExpense, "40", "2024-03-02")
	f.transaction(t, alice, rent, models.TypeExpense, "700", "2024-03-05")
	f.transaction(t, alice, salary, models.TypeIncome, "3000", "2024-03-10")
	f.transaction(t, alice, food, models.TypeExpense, "25", "2024-01-15")

	march := Period{Month: 3, Year: 2024}

	byCat, err := f.agg.ExpenseByCategory(ctx, alice, march)
	if err != nil {
		t.Fatalf("ExpenseByCategory: %v", err)
	}
	if len(byCat) != 2 {
		t.Fatalf("got %d categories, want 2", len(byCat))
	}
	if byCat[0].Category != "Rent" || !byCat[0].Amount.Equal(dec("700")) {
		t.Errorf("first = %+v, want Rent 700", byCat[0])
	}

	chart, err := f.agg.MonthlyTotals(ctx, alice, march, 6)
	if err != nil {
		t.Fatalf("MonthlyTotals: %v", err)
	}
	if len(chart) != 6 {
		t.Fatalf("got %d months, want 6", len(chart))
	}
	if chart[0].Month != "2023-10" || chart[5].Month != "2024-03" {
		t.Errorf("range = %s..%s, want 2023-10..2024-03", chart[0].Month, chart[5].Month)
	}
	if !chart[3].Expense.Equal(dec("25")) {
		t.Errorf("January expense = %s, want 25", chart[3].Expense)
	}
	if !chart[5].Income.Equal(dec("3000")) || !chart[5].Expense.Equal(dec("740")) {
		t.Errorf("March = %+v, want income 3000 expense 740", chart[5])
	}
}

func TestComputePeriodTotalsScenarios(t *testing.T) {
	type expense struct {
		amount, date string
	}
	tests := []struct {
		name      string
		period    Period
		budget    string
		expenses  []expense
		used      string
		remaining string
		progress  int
	}{
		{
			name:      "three expenses reach ninety percent",
			period:    Period{Month: 3, Year: 2024},
			budget:    "100000",
			expenses:  []expense{{"30000", "2024-03-02"}, {"30000", "2024-03-12"}, {"30000", "2024-03-25"}},
			used:      "90000",
			remaining: "10000",
			progress:  90,
		},
		{
			name:      "overspend clamps progress",
			period:    Period{Month: 3, Year: 2024},
			budget:    "50000",
			expenses:  []expense{{"50000", "2024-03-02"}, {"30000", "2024-03-20"}},
			used:      "80000",
			remaining: "-30000",
			progress:  100,
		},
		{
			name:   "december window ends at new year UTC",
			period: Period{Month: 12, Year: 2024},
			budget: "100000",
			expenses: []expense{
				{"30000", "2024-12-01T00:00:00Z"},
				{"60000", "2024-12-31T23:59:59Z"},
				{"7", "2025-01-01T01:00:00+02:00"},
				{"999", "2025-01-01T00:00:00Z"},
				{"999", "2024-11-30T23:59:59Z"},
			},
			used:      "90007",
			remaining: "9993",
			progress:  90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			alice := f.user(t, "alice@example.com")
			food := f.category(t, alice, "Food", models.TypeExpense)
			for _, e := range tt.expenses {
				f.transaction(t, alice, food, models.TypeExpense, e.amount, e.date)
			}

			got, err := f.agg.ComputePeriodTotals(ctx, alice, &food, tt.period, dec(tt.budget))
			if err != nil {
				t.Fatalf("ComputePeriodTotals: %v", err)
			}
			if !got.Used.Equal(dec(tt.used)) || !got.Remaining.Equal(dec(tt.remaining)) || got.Progress != tt.progress {
				t.Errorf("got used %s remaining %s progress %d, want %s %s %d",
					got.Used, got.Remaining, got.Progress, tt.used, tt.remaining, tt.progress)
			}

			f.budget(t, alice, food, tt.budget, tt.period.Month, tt.period.Year)
			month, year := tt.period.Month, tt.period.Year
			listed, err := f.budgets.List(ctx, BudgetFilter{UserID: alice, Month: &month, Year: &year})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(listed) != 1 {
				t.Fatalf("got %d budgets, want 1", len(listed))
			}
			if !listed[0].Used.Equal(dec(tt.used)) || !listed[0].Remaining.Equal(dec(tt.remaining)) {
				t.Errorf("listed used %s remaining %s, want %s %s",
					listed[0].Used, listed[0].Remaining, tt.used, tt.remaining)
			}
		})
	}
}
