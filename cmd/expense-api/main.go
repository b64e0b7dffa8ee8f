package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Saksham-hacked/expense-mcp-server/internal/api"
	"github.com/Saksham-hacked/expense-mcp-server/internal/api/handlers"
	"github.com/Saksham-hacked/expense-mcp-server/internal/repository"
	"github.com/Saksham-hacked/expense-mcp-server/internal/service"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/config"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/logger"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/postgres"

	"go.uber.org/zap"
)

// expense-api exposes the same four expense operations as the MCP server,
// over plain HTTP for callers that do not speak MCP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting expense API")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)

	app := api.SetupRouter(expenseHandler)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server listening", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
