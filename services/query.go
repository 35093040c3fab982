package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/finance-api/models"
)

// TransactionFilter selects transactions. Nil fields add no constraint.
type TransactionFilter struct {
	UserID     string
	CategoryID *string
	Type       *models.TransactionType
	From       *time.Time // inclusive
	Before     *time.Time // exclusive
	Through    *time.Time // inclusive
}

// InPeriod narrows the filter to p's half-open window.
func (f TransactionFilter) InPeriod(p Period) TransactionFilter {
	start, end := p.Start(), p.End()
	f.From, f.Before, f.Through = &start, &end, nil
	return f
}

// OfType narrows the filter to one transaction type.
func (f TransactionFilter) OfType(t models.TransactionType) TransactionFilter {
	f.Type = &t
	return f
}

func (f TransactionFilter) where(alias string) *clauseBuilder {
	w := &clauseBuilder{}
	w.add(alias+".user_id = $%d", f.UserID)
	if f.CategoryID != nil {
		w.add(alias+".category_id = $%d", *f.CategoryID)
	}
	if f.Type != nil {
		w.add(alias+".type = $%d", string(*f.Type))
	}
	if f.From != nil {
		w.add(alias+".date >= $%d", f.From.UTC())
	}
	if f.Before != nil {
		w.add(alias+".date < $%d", f.Before.UTC())
	}
	if f.Through != nil {
		w.add(alias+".date <= $%d", f.Through.UTC())
	}
	return w
}

// BudgetFilter selects budgets. Nil fields add no constraint.
type BudgetFilter struct {
	UserID string
	Month  *int
	Year   *int
}

func (f BudgetFilter) where(alias string) *clauseBuilder {
	w := &clauseBuilder{}
	w.add(alias+".user_id = $%d", f.UserID)
	if f.Month != nil {
		w.add(alias+".month = $%d", *f.Month)
	}
	if f.Year != nil {
		w.add(alias+".year = $%d", *f.Year)
	}
	return w
}

// clauseBuilder accumulates numbered-placeholder fragments and their arguments.
type clauseBuilder struct {
	parts []string
	args  []any
}

// add appends a fragment whose single %d is replaced by the next placeholder index.
func (b *clauseBuilder) add(fragment string, arg any) {
	b.args = append(b.args, arg)
	b.parts = append(b.parts, fmt.Sprintf(fragment, len(b.args)))
}

func (b *clauseBuilder) empty() bool {
	return len(b.parts) == 0
}

// next returns the placeholder for an argument appended after the built fragments.
func (b *clauseBuilder) next(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *clauseBuilder) join(sep string) string {
	return strings.Join(b.parts, sep)
}

func (b *clauseBuilder) whereSQL() string {
	if b.empty() {
		return ""
	}
	return " WHERE " + b.join(" AND ")
}
