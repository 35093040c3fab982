package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Category   *CategoryRef    `json:"category,omitempty"`
}

// BudgetWithUsage is a budget row of GET /budgets.
type BudgetWithUsage struct {
	Budget
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetProgress is a budget row of the dashboard.
type BudgetProgress struct {
	Budget
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  int             `json:"progress"`
}

type CreateBudgetRequest struct {
	UserID     string           `json:"userId"`
	CategoryID string           `json:"categoryId" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Month      int              `json:"month" binding:"required"`
	Year       int              `json:"year" binding:"required"`
}

type UpdateBudgetRequest struct {
	ID         string           `json:"id" binding:"required"`
	CategoryID string           `json:"categoryId" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Month      int              `json:"month" binding:"required"`
	Year       int              `json:"year" binding:"required"`
}
