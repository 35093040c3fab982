package models

import "github.com/shopspring/decimal"

type Dashboard struct {
	Balance            decimal.Decimal  `json:"balance"`
	TotalIncome        decimal.Decimal  `json:"totalIncome"`
	TotalExpense       decimal.Decimal  `json:"totalExpense"`
	IncomeMonth        decimal.Decimal  `json:"incomeMonth"`
	ExpenseMonth       decimal.Decimal  `json:"expenseMonth"`
	TransactionCount   int              `json:"transactionCount"`
	CategoriesCount    int              `json:"categoriesCount"`
	Budgets            []BudgetProgress `json:"budgets"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
	ExpenseByCategory  []CategoryAmount `json:"expenseByCategory"`
	IncomeExpenseChart []MonthlyTotals  `json:"incomeExpenseChart"`
}

type CategoryAmount struct {
	CategoryID string          `json:"categoryId"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
}

type MonthlyTotals struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
