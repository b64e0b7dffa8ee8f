// Package validate rejects malformed caller input before it reaches storage.
// All functions are pure; every failure wraps one of the sentinel errors below
// so callers can classify it with errors.Is.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidRange  = errors.New("invalid date range")
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// DateLayout is the only accepted date form.
const DateLayout = "2006-01-02"

// Date parses a YYYY-MM-DD string into a calendar date (UTC, midnight).
// The digit pattern is checked first because time.Parse tolerates unpadded
// fields; a matching pattern with an impossible date (2025-13-45) still fails.
func Date(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidFormat, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidFormat, s)
	}
	return t, nil
}

// Month parses a YYYY-MM string into (year, month).
func Month(s string) (int, int, error) {
	if !monthPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: invalid month %q, expected YYYY-MM", ErrInvalidFormat, s)
	}
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid month %q, expected YYYY-MM", ErrInvalidFormat, s)
	}
	return t.Year(), int(t.Month()), nil
}

// NonEmpty returns the trimmed value of a required string field.
func NonEmpty(s, field string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required and cannot be empty", ErrMissingField, field)
	}
	return trimmed, nil
}

// Amount converts a caller-supplied number into an exact decimal.
// The conversion goes through the shortest decimal representation of the
// float, so 45.50 becomes exactly 45.5 and never 45.49999....
func Amount(v float64) (decimal.Decimal, error) {
	if v <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidAmount, v)
	}
	return decimal.NewFromFloat(v), nil
}

// Optional trims an optional string field; empty after trimming means absent.
func Optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// DateRange checks that start does not come after end.
func DateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: start_date (%s) cannot be after end_date (%s)",
			ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}
