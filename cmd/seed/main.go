package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Saksham-hacked/expense-mcp-server/internal/models"
	"github.com/Saksham-hacked/expense-mcp-server/internal/repository"
	"github.com/Saksham-hacked/expense-mcp-server/internal/validate"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/config"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/logger"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/postgres"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// seed inserts a month of sample expenses for a test tenant so the four
// tools have data to work with during development.
func main() {
	userID := flag.String("user", "demo_user", "tenant to seed")
	month := flag.String("month", "2025-01", "month to seed (YYYY-MM)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	year, monthNum, err := validate.Month(*month)
	if err != nil {
		appLogger.Fatal("Invalid month", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	appLogger.Info("Seeding sample expenses",
		zap.String("user_id", *userID),
		zap.String("month", *month),
	)

	samples := []struct {
		day      int
		amount   string
		category string
		merchant string
		note     string
	}{
		{3, "45.50", "Food", "Starbucks", "Coffee meeting"},
		{5, "120.00", "Transport", "Metro", ""},
		{8, "34.99", "Entertainment", "Netflix", "Monthly subscription"},
		{12, "210.75", "Food", "Whole Foods", "Groceries"},
		{15, "60.00", "Healthcare", "", "Pharmacy"},
		{20, "89.90", "Shopping", "Amazon", ""},
		{27, "18.25", "Food", "Chipotle", ""},
	}

	for _, s := range samples {
		amount, err := decimal.NewFromString(s.amount)
		if err != nil {
			appLogger.Fatal("Invalid sample amount", zap.String("amount", s.amount), zap.Error(err))
		}

		expense := models.Expense{
			UserID:   *userID,
			Date:     time.Date(year, time.Month(monthNum), s.day, 0, 0, 0, 0, time.UTC),
			Amount:   amount,
			Category: s.category,
			Merchant: validate.Optional(s.merchant),
			Note:     validate.Optional(s.note),
		}

		created, err := expenseRepo.Insert(ctx, expense)
		if err != nil {
			appLogger.Fatal("Failed to insert sample expense", zap.Error(err))
		}
		appLogger.Info("Seeded expense",
			zap.String("id", created.ID.String()),
			zap.String("category", created.Category),
			zap.String("amount", created.Amount.String()),
		)
	}

	appLogger.Info("Seeding complete", zap.Int("count", len(samples)))
}
