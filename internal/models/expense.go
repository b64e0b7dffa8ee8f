package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is one persisted expense record. Every read and write is scoped by
// UserID; records are never updated or deleted once created.
type Expense struct {
	ID        uuid.UUID       `db:"id"`
	UserID    string          `db:"user_id"`
	Date      time.Time       `db:"date"`
	Amount    decimal.Decimal `db:"amount"`
	Category  string          `db:"category"`
	Merchant  *string         `db:"merchant"`
	Note      *string         `db:"note"`
	CreatedAt time.Time       `db:"created_at"`
}

// CategoryTotal is an aggregated amount for one category within a date range.
type CategoryTotal struct {
	Category string          `db:"category"`
	Total    decimal.Decimal `db:"total"`
}

// MonthlySummary holds the aggregates for one user and one calendar month.
type MonthlySummary struct {
	Total     decimal.Decimal
	Count     int64
	Breakdown []CategoryTotal
}
