package services

import (
	"fmt"
	"time"
)

// Period is a calendar month used to scope budgets and aggregates.
type Period struct {
	Month int
	Year  int
}

// NewPeriod validates month and year.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, invalid("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return Period{}, invalid("invalid year %d", year)
	}
	return Period{Month: month, Year: year}, nil
}

// PeriodOf returns the period containing t, in UTC.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Start is the first instant of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following period (exclusive bound).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Shift moves the period by n months; negative n moves backwards.
func (p Period) Shift(n int) Period {
	return PeriodOf(p.Start().AddDate(0, n, 0))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
