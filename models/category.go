package models

import "time"

type TransactionCategory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CategoryRef is the embedded category shape attached to budgets and transactions.
type CategoryRef struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
}

type CreateCategoryRequest struct {
	Name   string          `json:"name" binding:"required"`
	Type   TransactionType `json:"type" binding:"required"`
	UserID string          `json:"userId"`
}

type UpdateCategoryRequest struct {
	ID     string          `json:"id" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Type   TransactionType `json:"type" binding:"required"`
	UserID string          `json:"userId"`
}

type DeleteRequest struct {
	ID string `json:"id" binding:"required"`
}
