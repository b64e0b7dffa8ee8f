package service_test

import (
	"context"
	"testing"

	"github.com/Saksham-hacked/expense-mcp-server/internal/dto"
	"github.com/Saksham-hacked/expense-mcp-server/internal/repository"
	"github.com/Saksham-hacked/expense-mcp-server/internal/service"
	"github.com/Saksham-hacked/expense-mcp-server/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *service.ExpenseService {
	return service.NewExpenseService(repository.NewMemory(), zap.NewNop())
}

func addExpense(t *testing.T, svc *service.ExpenseService, userID, date string, amount float64, category string) *dto.ExpenseResponse {
	t.Helper()
	resp, err := svc.AddExpense(context.Background(), &dto.AddExpenseRequest{
		UserID:   userID,
		Date:     date,
		Amount:   amount,
		Category: category,
	})
	require.NoError(t, err)
	return resp
}

func TestAddExpense(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("full record", func(t *testing.T) {
		resp, err := svc.AddExpense(ctx, &dto.AddExpenseRequest{
			UserID:   "user_123",
			Date:     "2025-01-15",
			Amount:   45.50,
			Category: "Food",
			Merchant: "Starbucks",
			Note:     "Coffee meeting",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "user_123", resp.UserID)
		assert.Equal(t, "2025-01-15", resp.Date)
		assert.Equal(t, "45.5", resp.Amount.String())
		assert.Equal(t, "Food", resp.Category)
		require.NotNil(t, resp.Merchant)
		assert.Equal(t, "Starbucks", *resp.Merchant)
		require.NotNil(t, resp.Note)
		assert.Equal(t, "Coffee meeting", *resp.Note)
		assert.NotEmpty(t, resp.CreatedAt)
	})

	t.Run("optional fields absent", func(t *testing.T) {
		resp, err := svc.AddExpense(ctx, &dto.AddExpenseRequest{
			UserID:   "user_123",
			Date:     "2025-01-16",
			Amount:   100,
			Category: "Transport",
			Merchant: "   ",
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Merchant)
		assert.Nil(t, resp.Note)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			req     dto.AddExpenseRequest
			wantErr error
		}{
			{
				name:    "empty user_id",
				req:     dto.AddExpenseRequest{Date: "2025-01-15", Amount: 50, Category: "Food"},
				wantErr: validate.ErrMissingField,
			},
			{
				name:    "empty category",
				req:     dto.AddExpenseRequest{UserID: "u1", Date: "2025-01-15", Amount: 50, Category: "  "},
				wantErr: validate.ErrMissingField,
			},
			{
				name:    "bad date",
				req:     dto.AddExpenseRequest{UserID: "u1", Date: "15-01-2025", Amount: 50, Category: "Food"},
				wantErr: validate.ErrInvalidFormat,
			},
			{
				name:    "zero amount",
				req:     dto.AddExpenseRequest{UserID: "u1", Date: "2025-01-15", Amount: 0, Category: "Food"},
				wantErr: validate.ErrInvalidAmount,
			},
			{
				name:    "negative amount",
				req:     dto.AddExpenseRequest{UserID: "u1", Date: "2025-01-15", Amount: -50, Category: "Food"},
				wantErr: validate.ErrInvalidAmount,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.AddExpense(ctx, &tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestListExpenses(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Same-day entries check the creation-order tie-break.
	addExpense(t, svc, "u1", "2025-01-10", 20, "Food")
	addExpense(t, svc, "u1", "2025-01-05", 10, "Food")
	addExpense(t, svc, "u1", "2025-01-05", 30, "Transport")
	addExpense(t, svc, "u2", "2025-01-07", 99, "Food")

	t.Run("ordered by date then insertion", func(t *testing.T) {
		resp, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-01-01", EndDate: "2025-01-31",
		})
		require.NoError(t, err)
		require.Len(t, resp, 3)
		assert.Equal(t, "10", resp[0].Amount.String())
		assert.Equal(t, "30", resp[1].Amount.String())
		assert.Equal(t, "20", resp[2].Amount.String())
	})

	t.Run("tenant isolation", func(t *testing.T) {
		u1, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-01-01", EndDate: "2025-01-31",
		})
		require.NoError(t, err)
		u2, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u2", StartDate: "2025-01-01", EndDate: "2025-01-31",
		})
		require.NoError(t, err)

		assert.Len(t, u1, 3)
		require.Len(t, u2, 1)
		for _, e := range u1 {
			assert.Equal(t, "u1", e.UserID)
		}
		assert.Equal(t, "u2", u2[0].UserID)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		resp, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-01-05", EndDate: "2025-01-10",
		})
		require.NoError(t, err)
		assert.Len(t, resp, 3)
	})

	t.Run("empty range yields empty array", func(t *testing.T) {
		resp, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2024-06-01", EndDate: "2024-06-30",
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("idempotent read", func(t *testing.T) {
		req := &dto.ListExpensesRequest{UserID: "u1", StartDate: "2025-01-01", EndDate: "2025-01-31"}
		first, err := svc.ListExpenses(ctx, req)
		require.NoError(t, err)
		second, err := svc.ListExpenses(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("start after end rejected", func(t *testing.T) {
		_, err := svc.ListExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-01-31", EndDate: "2025-01-01",
		})
		assert.ErrorIs(t, err, validate.ErrInvalidRange)
	})
}

func TestSummarizeExpenses(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	addExpense(t, svc, "u1", "2025-01-05", 100.00, "Food")
	addExpense(t, svc, "u1", "2025-01-10", 200.00, "Transport")
	addExpense(t, svc, "u1", "2025-01-15", 50.00, "Food")
	addExpense(t, svc, "u2", "2025-01-15", 999.99, "Food")

	t.Run("grouped and ordered by total desc", func(t *testing.T) {
		resp, err := svc.SummarizeExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-01-01", EndDate: "2025-01-31",
		})
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "Transport", resp[0].Category)
		assert.Equal(t, "200", resp[0].Total.String())
		assert.Equal(t, "Food", resp[1].Category)
		assert.Equal(t, "150", resp[1].Total.String())
	})

	t.Run("empty range yields empty array", func(t *testing.T) {
		resp, err := svc.SummarizeExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2024-06-01", EndDate: "2024-06-30",
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("start after end rejected", func(t *testing.T) {
		_, err := svc.SummarizeExpenses(ctx, &dto.ListExpensesRequest{
			UserID: "u1", StartDate: "2025-02-01", EndDate: "2025-01-01",
		})
		assert.ErrorIs(t, err, validate.ErrInvalidRange)
	})
}

func TestMonthlyReport(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("zero case", func(t *testing.T) {
		resp, err := svc.MonthlyReport(ctx, &dto.MonthlyReportRequest{UserID: "nobody", Month: "2025-01"})
		require.NoError(t, err)

		assert.Equal(t, "0", resp.TotalSpending.String())
		assert.Equal(t, int64(0), resp.ExpenseCount)
		assert.Empty(t, resp.CategoryBreakdown)
		assert.Equal(t, "No expenses recorded for 2025-01.", resp.Summary)
	})

	t.Run("end to end scenario", func(t *testing.T) {
		addExpense(t, svc, "u1", "2025-01-05", 100.00, "Food")
		addExpense(t, svc, "u1", "2025-01-10", 200.00, "Transport")
		addExpense(t, svc, "u1", "2025-01-15", 50.00, "Food")
		addExpense(t, svc, "u1", "2025-01-20", 150.00, "Entertainment")
		// Outside the month, must not count.
		addExpense(t, svc, "u1", "2025-02-01", 77.00, "Food")

		resp, err := svc.MonthlyReport(ctx, &dto.MonthlyReportRequest{UserID: "u1", Month: "2025-01"})
		require.NoError(t, err)

		assert.Equal(t, "u1", resp.UserID)
		assert.Equal(t, "2025-01", resp.Month)
		assert.Equal(t, "500", resp.TotalSpending.String())
		assert.Equal(t, int64(4), resp.ExpenseCount)

		require.Len(t, resp.CategoryBreakdown, 3)
		assert.Equal(t, "Transport", resp.CategoryBreakdown[0].Category)
		assert.Equal(t, "200", resp.CategoryBreakdown[0].Total.String())

		byCategory := make(map[string]string)
		for _, ct := range resp.CategoryBreakdown {
			byCategory[ct.Category] = ct.Total.String()
		}
		assert.Equal(t, "150", byCategory["Food"])
		assert.Equal(t, "150", byCategory["Entertainment"])

		assert.Contains(t, resp.Summary, "2025-01")
		assert.Contains(t, resp.Summary, "500.00"+"Rs")
		assert.Contains(t, resp.Summary, "Transport")
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := svc.MonthlyReport(ctx, &dto.MonthlyReportRequest{Month: "2025-01"})
		assert.ErrorIs(t, err, validate.ErrMissingField)

		_, err = svc.MonthlyReport(ctx, &dto.MonthlyReportRequest{UserID: "u1", Month: "2025/01"})
		assert.ErrorIs(t, err, validate.ErrInvalidFormat)
	})
}

func TestAmountPrecision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// 0.1 + 0.2 style drift must not appear in aggregates.
	addExpense(t, svc, "u1", "2025-03-01", 0.1, "Misc")
	addExpense(t, svc, "u1", "2025-03-02", 0.2, "Misc")

	resp, err := svc.SummarizeExpenses(ctx, &dto.ListExpensesRequest{
		UserID: "u1", StartDate: "2025-03-01", EndDate: "2025-03-31",
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "0.3", resp[0].Total.String())
}
