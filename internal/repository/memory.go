package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Saksham-hacked/expense-mcp-server/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Memory is an in-memory expense store with the same contract as
// ExpenseRepository: tenant filtering, inclusive date ranges, list ordering by
// (date, created_at) and summaries ordered by descending total. It backs the
// tests and any wiring that needs a store without a database.
type Memory struct {
	mu       sync.Mutex
	expenses []models.Expense
	base     time.Time
	seq      int64
}

func NewMemory() *Memory {
	return &Memory{base: time.Now().UTC()}
}

func (m *Memory) Insert(_ context.Context, e models.Expense) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.New()
	// Strictly increasing creation timestamps keep same-day ordering stable.
	m.seq++
	e.CreatedAt = m.base.Add(time.Duration(m.seq) * time.Millisecond)

	m.expenses = append(m.expenses, e)
	return e, nil
}

func (m *Memory) ListRange(_ context.Context, userID string, start, end time.Time) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Expense
	for _, e := range m.expenses {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}

func (m *Memory) SummarizeByCategory(ctx context.Context, userID string, start, end time.Time) ([]models.CategoryTotal, error) {
	matched, err := m.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, e := range matched {
		if _, ok := sums[e.Category]; !ok {
			order = append(order, e.Category)
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	totals := make([]models.CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, models.CategoryTotal{Category: category, Total: sums[category]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	if len(totals) == 0 {
		return nil, nil
	}
	return totals, nil
}

func (m *Memory) MonthlySummary(ctx context.Context, userID string, year, month int) (models.MonthlySummary, error) {
	start, end := MonthBounds(year, month)

	matched, err := m.ListRange(ctx, userID, start, end)
	if err != nil {
		return models.MonthlySummary{}, err
	}

	total := decimal.Zero
	for _, e := range matched {
		total = total.Add(e.Amount)
	}

	breakdown, err := m.SummarizeByCategory(ctx, userID, start, end)
	if err != nil {
		return models.MonthlySummary{}, err
	}

	return models.MonthlySummary{
		Total:     total,
		Count:     int64(len(matched)),
		Breakdown: breakdown,
	}, nil
}
