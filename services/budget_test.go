package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/google/uuid"
)

func TestCreateBudgetRejectsDuplicatePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)

	f.budget(t, alice, food, "200", 3, 2024)

	_, err := f.budgets.Create(ctx, BudgetInput{UserID: alice, CategoryID: food, Amount: dec("300"), Month: 3, Year: 2024})
	if !errors.Is(err, ErrBudgetConflict) {
		t.Fatalf("duplicate create error = %v, want ErrBudgetConflict", err)
	}

	// Same category, other month is fine
	f.budget(t, alice, food, "200", 4, 2024)
}

func TestUniqueIndexIsAuthoritative(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	f.budget(t, alice, food, "200", 3, 2024)

	// Bypass the pre-check, as a racing request would
	_, err := f.db.Exec(`
		INSERT INTO budgets (id, user_id, category_id, amount, month, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		uuid.New().String(), alice, food, "100", 3, 2024)
	if err == nil {
		t.Fatal("expected unique violation, got nil")
	}
	if !isUniqueViolation(err) {
		t.Errorf("isUniqueViolation(%v) = false, want true", err)
	}
}

func TestCreateBudgetValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)

	tests := []struct {
		name string
		in   BudgetInput
	}{
		{"missing user", BudgetInput{CategoryID: food, Amount: dec("10"), Month: 3, Year: 2024}},
		{"missing category", BudgetInput{UserID: alice, Amount: dec("10"), Month: 3, Year: 2024}},
		{"month out of range", BudgetInput{UserID: alice, CategoryID: food, Amount: dec("10"), Month: 13, Year: 2024}},
		{"zero amount", BudgetInput{UserID: alice, CategoryID: food, Amount: dec("0"), Month: 3, Year: 2024}},
		{"negative amount", BudgetInput{UserID: alice, CategoryID: food, Amount: dec("-1"), Month: 3, Year: 2024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.budgets.Create(context.Background(), tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateBudgetExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	b := f.budget(t, alice, food, "200", 3, 2024)

	updated, err := f.budgets.Update(ctx, b.ID, BudgetInput{CategoryID: food, Amount: dec("250"), Month: 3, Year: 2024})
	if err != nil {
		t.Fatalf("update keeping own period: %v", err)
	}
	if !updated.Amount.Equal(dec("250")) {
		t.Errorf("Amount = %s, want 250", updated.Amount)
	}
	if updated.Category == nil || updated.Category.Name != "Food" {
		t.Errorf("Category = %+v, want Food", updated.Category)
	}
}

func TestUpdateBudgetConflictsWithOtherBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	f.budget(t, alice, food, "200", 3, 2024)
	april := f.budget(t, alice, food, "200", 4, 2024)

	_, err := f.budgets.Update(ctx, april.ID, BudgetInput{CategoryID: food, Amount: dec("200"), Month: 3, Year: 2024})
	if !errors.Is(err, ErrBudgetConflict) {
		t.Fatalf("error = %v, want ErrBudgetConflict", err)
	}
}

func TestUpdateAndDeleteMissingBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)

	_, err := f.budgets.Update(ctx, uuid.New().String(), BudgetInput{CategoryID: food, Amount: dec("1"), Month: 1, Year: 2024})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update error = %v, want ErrNotFound", err)
	}
	if err := f.budgets.Delete(ctx, uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete error = %v, want ErrNotFound", err)
	}
}

func TestListBudgetsWithUsage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	rent := f.category(t, alice, "Rent", models.TypeExpense)
	f.budget(t, alice, food, "100", 3, 2024)
	f.budget(t, alice, rent, "500", 3, 2024)
	f.budget(t, alice, food, "100", 4, 2024)

	f.transaction(t, alice, food, models.TypeExpense, "30", "2024-03-03")
	f.transaction(t, alice, food, models.TypeExpense, "20", "2024-03-20")
	f.transaction(t, alice, rent, models.TypeExpense, "600", "2024-03-01")

	month, year := 3, 2024
	got, err := f.budgets.List(ctx, BudgetFilter{UserID: alice, Month: &month, Year: &year})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d budgets, want 2", len(got))
	}

	byCategory := map[string]models.BudgetWithUsage{}
	for _, b := range got {
		byCategory[b.Category.Name] = b
	}
	if b := byCategory["Food"]; !b.Used.Equal(dec("50")) || !b.Remaining.Equal(dec("50")) {
		t.Errorf("Food used/remaining = %s/%s, want 50/50", b.Used, b.Remaining)
	}
	if b := byCategory["Rent"]; !b.Used.Equal(dec("600")) || !b.Remaining.Equal(dec("-100")) {
		t.Errorf("Rent used/remaining = %s/%s, want 600/-100", b.Used, b.Remaining)
	}

	all, err := f.budgets.List(ctx, BudgetFilter{UserID: alice})
	if err != nil {
		t.Fatalf("List without period: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d budgets, want 3", len(all))
	}
}

func TestListWithProgressCapsAt100(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	rent := f.category(t, alice, "Rent", models.TypeExpense)
	f.budget(t, alice, rent, "500", 3, 2024)
	f.transaction(t, alice, rent, models.TypeExpense, "600", "2024-03-01")

	month, year := 3, 2024
	got, err := f.budgets.ListWithProgress(context.Background(), BudgetFilter{UserID: alice, Month: &month, Year: &year})
	if err != nil {
		t.Fatalf("ListWithProgress: %v", err)
	}
	if len(got) != 1 || got[0].Progress != 100 || !got[0].Spent.Equal(dec("600")) {
		t.Errorf("got %+v, want progress 100 and spent 600", got)
	}
}
