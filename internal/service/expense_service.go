package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Saksham-hacked/expense-mcp-server/internal/dto"
	"github.com/Saksham-hacked/expense-mcp-server/internal/models"
	"github.com/Saksham-hacked/expense-mcp-server/internal/validate"

	"go.uber.org/zap"
)

// ExpenseStore is the persistence contract the service depends on. The
// Postgres repository implements it in production; the in-memory store
// substitutes for it in tests.
type ExpenseStore interface {
	Insert(ctx context.Context, e models.Expense) (models.Expense, error)
	ListRange(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error)
	SummarizeByCategory(ctx context.Context, userID string, start, end time.Time) ([]models.CategoryTotal, error)
	MonthlySummary(ctx context.Context, userID string, year, month int) (models.MonthlySummary, error)
}

// ExpenseService validates caller input, runs the tenant-scoped store
// operation and shapes the result for the caller. Validation always happens
// before any storage access, so a rejected call has no persisted effect.
type ExpenseService struct {
	store  ExpenseStore
	logger *zap.Logger
}

func NewExpenseService(store ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		store:  store,
		logger: logger,
	}
}

func (s *ExpenseService) AddExpense(ctx context.Context, req *dto.AddExpenseRequest) (*dto.ExpenseResponse, error) {
	userID, err := validate.NonEmpty(req.UserID, "user_id")
	if err != nil {
		return nil, err
	}

	date, err := validate.Date(req.Date)
	if err != nil {
		return nil, err
	}

	amount, err := validate.Amount(req.Amount)
	if err != nil {
		return nil, err
	}

	category, err := validate.NonEmpty(req.Category, "category")
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserID:   userID,
		Date:     date,
		Amount:   amount,
		Category: category,
		Merchant: validate.Optional(req.Merchant),
		Note:     validate.Optional(req.Note),
	}

	created, err := s.store.Insert(ctx, expense)
	if err != nil {
		s.logger.Error("failed to insert expense", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toExpenseResponse(created)
	return &resp, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, req *dto.ListExpensesRequest) ([]dto.ExpenseResponse, error) {
	userID, start, end, err := s.validateRange(req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("failed to list expenses", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	return resp, nil
}

func (s *ExpenseService) SummarizeExpenses(ctx context.Context, req *dto.ListExpensesRequest) ([]dto.CategoryTotalResponse, error) {
	userID, start, end, err := s.validateRange(req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.SummarizeByCategory(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("failed to summarize expenses", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toBreakdownResponse(totals), nil
}

func (s *ExpenseService) MonthlyReport(ctx context.Context, req *dto.MonthlyReportRequest) (*dto.MonthlyReportResponse, error) {
	userID, err := validate.NonEmpty(req.UserID, "user_id")
	if err != nil {
		return nil, err
	}

	year, month, err := validate.Month(req.Month)
	if err != nil {
		return nil, err
	}

	summary, err := s.store.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		s.logger.Error("failed to build monthly summary", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.MonthlyReportResponse{
		UserID:            userID,
		Month:             req.Month,
		TotalSpending:     json.Number(summary.Total.String()),
		ExpenseCount:      summary.Count,
		CategoryBreakdown: toBreakdownResponse(summary.Breakdown),
		Summary:           MonthlySynopsis(req.Month, summary.Total, summary.Count, summary.Breakdown),
	}, nil
}

func (s *ExpenseService) validateRange(rawUserID, rawStart, rawEnd string) (string, time.Time, time.Time, error) {
	userID, err := validate.NonEmpty(rawUserID, "user_id")
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	start, err := validate.Date(rawStart)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	end, err := validate.Date(rawEnd)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	if err := validate.DateRange(start, end); err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	return userID, start, end, nil
}

func toExpenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID,
		Date:      e.Date.Format(validate.DateLayout),
		Amount:    json.Number(e.Amount.String()),
		Category:  e.Category,
		Merchant:  e.Merchant,
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBreakdownResponse(totals []models.CategoryTotal) []dto.CategoryTotalResponse {
	resp := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		resp = append(resp, dto.CategoryTotalResponse{
			Category: ct.Category,
			Total:    json.Number(ct.Total.String()),
		})
	}
	return resp
}
