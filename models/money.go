package models

import "github.com/shopspring/decimal"

func init() {
	// The UI does arithmetic on amounts, so they travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType tags both categories and transactions.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}
