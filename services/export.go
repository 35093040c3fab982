package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

var exportHeaders = []string{"Date", "Title", "Category", "Type", "Amount", "Note"}

// ExportService renders a period's transactions as an XLSX workbook.
type ExportService struct {
	transactions *TransactionService
}

func NewExportService(transactions *TransactionService) *ExportService {
	return &ExportService{transactions: transactions}
}

// Filename is the attachment name used for a period export.
func (s *ExportService) Filename(p Period) string {
	return fmt.Sprintf("transactions_%s.xlsx", p)
}

// Workbook builds the whole file in memory so callers can still fail cleanly before writing a response.
func (s *ExportService) Workbook(ctx context.Context, userID string, p Period) (*bytes.Buffer, error) {
	if userID == "" {
		return nil, invalid("userId is required")
	}

	rows, err := s.transactions.List(ctx, TransactionFilter{UserID: userID}.InPeriod(p), 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of adding a second one
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "F1", bold)
	}

	for i, t := range rows {
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		note := ""
		if t.Note != nil {
			note = *t.Note
		}
		amount, _ := t.Amount.Float64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{t.Date.UTC().Format("2006-01-02"), t.Title, category, string(t.Type), amount, note}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "B", 30)
	_ = f.SetColWidth(exportSheet, "C", "C", 18)
	_ = f.SetColWidth(exportSheet, "D", "D", 10)
	_ = f.SetColWidth(exportSheet, "E", "E", 12)
	_ = f.SetColWidth(exportSheet, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
