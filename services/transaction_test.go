package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LovationAdmin/finance-api/models"
)

func TestCreateTransactionValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	amount, zero := dec("10"), dec("0")

	tests := []struct {
		name string
		req  models.CreateTransactionRequest
	}{
		{"missing title", models.CreateTransactionRequest{Amount: &amount, Date: "2024-03-01", Type: models.TypeExpense, UserID: alice, CategoryID: food}},
		{"zero amount", models.CreateTransactionRequest{Title: "x", Amount: &zero, Date: "2024-03-01", Type: models.TypeExpense, UserID: alice, CategoryID: food}},
		{"bad type", models.CreateTransactionRequest{Title: "x", Amount: &amount, Date: "2024-03-01", Type: "TRANSFER", UserID: alice, CategoryID: food}},
		{"bad date", models.CreateTransactionRequest{Title: "x", Amount: &amount, Date: "01/03/2024", Type: models.TypeExpense, UserID: alice, CategoryID: food}},
		{"missing user", models.CreateTransactionRequest{Title: "x", Amount: &amount, Date: "2024-03-01", Type: models.TypeExpense, CategoryID: food}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.transactions.Create(context.Background(), tt.req); !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateTransactionIsPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)

	note := "weekly shop"
	amount := dec("42.10")
	created, err := f.transactions.Create(ctx, models.CreateTransactionRequest{
		Title: "Groceries", Amount: &amount, Date: "2024-03-09", Note: &note,
		Type: models.TypeExpense, UserID: alice, CategoryID: food,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Market"
	updated, err := f.transactions.Update(ctx, models.UpdateTransactionRequest{ID: created.ID, Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Market" {
		t.Errorf("Title = %q, want Market", updated.Title)
	}
	if !updated.Amount.Equal(dec("42.1")) {
		t.Errorf("Amount = %s, want 42.1", updated.Amount)
	}
	if updated.Note == nil || *updated.Note != note {
		t.Errorf("Note = %v, want %q", updated.Note, note)
	}
	if updated.Type != models.TypeExpense || updated.CategoryID != food {
		t.Errorf("type/category changed: %s/%s", updated.Type, updated.CategoryID)
	}
	if !updated.Date.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2024-03-09", updated.Date)
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	f := newFixture(t)
	title := "x"
	_, err := f.transactions.Update(context.Background(), models.UpdateTransactionRequest{ID: "does-not-exist", Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	salary := f.category(t, alice, "Salary", models.TypeIncome)

	f.transaction(t, alice, food, models.TypeExpense, "10", "2024-03-01")
	f.transaction(t, alice, food, models.TypeExpense, "20", "2024-03-15")
	f.transaction(t, alice, salary, models.TypeIncome, "100", "2024-03-20")
	f.transaction(t, alice, food, models.TypeExpense, "30", "2024-04-02")

	all, err := f.transactions.List(ctx, TransactionFilter{UserID: alice}, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d, want 4", len(all))
	}
	if !all[0].Amount.Equal(dec("30")) {
		t.Errorf("first = %s, want newest (30)", all[0].Amount)
	}
	if all[0].Category == nil || all[0].Category.Name != "Food" {
		t.Errorf("Category = %+v, want Food", all[0].Category)
	}

	income := models.TypeIncome
	got, err := f.transactions.List(ctx, TransactionFilter{UserID: alice, Type: &income}, 0)
	if err != nil || len(got) != 1 {
		t.Errorf("type filter: got %d (%v), want 1", len(got), err)
	}

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	through := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	got, err = f.transactions.List(ctx, TransactionFilter{UserID: alice, CategoryID: &food, From: &from, Through: &through}, 0)
	if err != nil || len(got) != 1 || !got[0].Amount.Equal(dec("20")) {
		t.Errorf("category+date filter: got %+v (%v), want the 20 expense", got, err)
	}

	limited, err := f.transactions.List(ctx, TransactionFilter{UserID: alice}, 2)
	if err != nil || len(limited) != 2 {
		t.Errorf("limit: got %d (%v), want 2", len(limited), err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	tx := f.transaction(t, alice, food, models.TypeExpense, "10", "2024-03-01")

	if err := f.transactions.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.transactions.GetByID(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if err := f.transactions.Delete(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
