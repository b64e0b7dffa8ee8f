package dto

import "encoding/json"

// Amounts are rendered as json.Number so the caller sees an exact decimal
// number, never a binary-float approximation.

type AddExpenseRequest struct {
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant,omitempty"`
	Note     string  `json:"note,omitempty"`
}

type ListExpensesRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type MonthlyReportRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

type ExpenseResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Date      string      `json:"date"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Merchant  *string     `json:"merchant"`
	Note      *string     `json:"note"`
	CreatedAt string      `json:"created_at"`
}

type CategoryTotalResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

type MonthlyReportResponse struct {
	UserID            string                  `json:"user_id"`
	Month             string                  `json:"month"`
	TotalSpending     json.Number             `json:"total_spending"`
	ExpenseCount      int64                   `json:"expense_count"`
	CategoryBreakdown []CategoryTotalResponse `json:"category_breakdown"`
	Summary           string                  `json:"summary"`
}
