package service

import (
	"fmt"

	"github.com/Saksham-hacked/expense-mcp-server/internal/models"

	"github.com/shopspring/decimal"
)

// currencyMarker is appended after every amount in the synopsis text.
const currencyMarker = "Rs"

// MonthlySynopsis renders the natural-language summary line of a monthly
// report. It is deterministic: the same aggregates always produce the same
// string, byte for byte.
func MonthlySynopsis(month string, total decimal.Decimal, count int64, breakdown []models.CategoryTotal) string {
	if count == 0 {
		return fmt.Sprintf("No expenses recorded for %s.", month)
	}

	if len(breakdown) == 0 {
		// A positive count always comes with at least one category group, so
		// this branch is unreachable through the store contract.
		return fmt.Sprintf("In %s, you spent %s%s across %d expenses.",
			month, total.StringFixed(2), currencyMarker, count)
	}

	top := breakdown[0]
	return fmt.Sprintf("In %s, you spent %s%s across %d expenses. Your highest spending category was %s at %s%s.",
		month, total.StringFixed(2), currencyMarker, count,
		top.Category, top.Total.StringFixed(2), currencyMarker)
}
