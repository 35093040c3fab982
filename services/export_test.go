package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LovationAdmin/finance-api/models"

	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	food := f.category(t, alice, "Food", models.TypeExpense)
	f.transaction(t, alice, food, models.TypeExpense, "12.5", "2024-03-04")
	f.transaction(t, alice, food, models.TypeExpense, "99", "2024-04-01")

	export := NewExportService(f.transactions)
	buf, err := export.Workbook(context.Background(), alice, Period{Month: 3, Year: 2024})
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus 1", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][4] != "Amount" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "2024-03-04" || rows[1][2] != "Food" || rows[1][3] != "EXPENSE" || rows[1][4] != "12.5" {
		t.Errorf("row = %v", rows[1])
	}

	if got := export.Filename(Period{Month: 3, Year: 2024}); got != "transactions_2024-03.xlsx" {
		t.Errorf("Filename = %q", got)
	}
}

func TestExportRequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := NewExportService(f.transactions).Workbook(context.Background(), "", Period{Month: 3, Year: 2024})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
