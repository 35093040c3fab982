package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Note       *string         `json:"note"`
	Type       TransactionType `json:"type"`
	UserID     string          `json:"userId"`
	CategoryID string          `json:"categoryId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Category   *CategoryRef    `json:"category,omitempty"`
}

type CreateTransactionRequest struct {
	Title      string           `json:"title" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Date       string           `json:"date" binding:"required"`
	Note       *string          `json:"note"`
	Type       TransactionType  `json:"type" binding:"required"`
	UserID     string           `json:"userId"`
	CategoryID string           `json:"categoryId" binding:"required"`
}

// UpdateTransactionRequest is a partial update: nil fields are left untouched.
type UpdateTransactionRequest struct {
	ID         string           `json:"id" binding:"required"`
	Title      *string          `json:"title"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       *string          `json:"date"`
	Note       *string          `json:"note"`
	Type       *TransactionType `json:"type"`
	CategoryID *string          `json:"categoryId"`
}
