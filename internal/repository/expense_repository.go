package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saksham-hacked/expense-mcp-server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrStorageFailure covers every underlying persistence error: connectivity,
// constraint violations, and an insert that contractually must return a row
// but did not. Not caller-correctable; never retried here.
var ErrStorageFailure = errors.New("storage failure")

const expensesTable = "expenses"

var expenseColumns = []string{"id", "user_id", "date", "amount", "category", "merchant", "note", "created_at"}

// ExpenseRepository is the PostgreSQL expense store. Every statement it
// issues is filtered by user_id, so cross-tenant reads are impossible by
// construction.
type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists one expense and returns it with the generated id and the
// database-assigned creation timestamp.
func (r *ExpenseRepository) Insert(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.ID = uuid.New()

	query := squirrel.Insert(expensesTable).
		Columns("id", "user_id", "date", "amount", "category", "merchant", "note").
		Values(e.ID, e.UserID, e.Date, e.Amount, e.Category, e.Merchant, e.Note).
		Suffix("RETURNING id, user_id, date, amount, category, merchant, note, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: build insert: %v", ErrStorageFailure, err)
	}

	var out models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&out.ID, &out.UserID, &out.Date, &out.Amount, &out.Category, &out.Merchant, &out.Note, &out.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Expense{}, fmt.Errorf("%w: insert returned no row", ErrStorageFailure)
		}
		return models.Expense{}, fmt.Errorf("%w: insert expense: %v", ErrStorageFailure, err)
	}

	r.logger.Info("expense created",
		zap.String("id", out.ID.String()),
		zap.String("user_id", out.UserID),
		zap.String("category", out.Category),
	)

	return out, nil
}

// ListRange returns the user's expenses with date in [start, end] inclusive,
// ordered by date then creation time. An empty range yields an empty slice.
func (r *ExpenseRepository) ListRange(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From(expensesTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build list: %v", ErrStorageFailure, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Amount, &e.Category, &e.Merchant, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan expense: %v", ErrStorageFailure, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", ErrStorageFailure, err)
	}

	return expenses, nil
}

// SummarizeByCategory groups the user's expenses in [start, end] by category
// and sums the amounts, highest total first. Totals are summed as NUMERIC in
// the database, so no float drift accumulates across rows.
func (r *ExpenseRepository) SummarizeByCategory(ctx context.Context, userID string, start, end time.Time) ([]models.CategoryTotal, error) {
	query := squirrel.Select("category", "SUM(amount) AS total").
		From(expensesTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		GroupBy("category").
		OrderBy("total DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build summary: %v", ErrStorageFailure, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: summarize expenses: %v", ErrStorageFailure, err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("%w: scan category total: %v", ErrStorageFailure, err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: summarize expenses: %v", ErrStorageFailure, err)
	}

	return totals, nil
}

// MonthlySummary composes the month's total, category breakdown and record
// count for one user. The month bounds are leap-aware.
func (r *ExpenseRepository) MonthlySummary(ctx context.Context, userID string, year, month int) (models.MonthlySummary, error) {
	start, end := MonthBounds(year, month)

	totalQuery := squirrel.Select("COALESCE(SUM(amount), 0) AS total", "COUNT(*) AS count").
		From(expensesTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := totalQuery.ToSql()
	if err != nil {
		return models.MonthlySummary{}, fmt.Errorf("%w: build monthly total: %v", ErrStorageFailure, err)
	}

	var summary models.MonthlySummary
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&summary.Total, &summary.Count); err != nil {
		return models.MonthlySummary{}, fmt.Errorf("%w: monthly total: %v", ErrStorageFailure, err)
	}

	breakdown, err := r.SummarizeByCategory(ctx, userID, start, end)
	if err != nil {
		return models.MonthlySummary{}, err
	}
	summary.Breakdown = breakdown

	return summary, nil
}
