package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Saksham-hacked/expense-mcp-server/internal/mcpserver"
	"github.com/Saksham-hacked/expense-mcp-server/internal/repository"
	"github.com/Saksham-hacked/expense-mcp-server/internal/service"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/config"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/logger"
	"github.com/Saksham-hacked/expense-mcp-server/pkg/postgres"

	"go.uber.org/zap"
)

const version = "1.0.0"

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
	appLogger.Info("Starting expense MCP server", zap.String("transport", cfg.MCP.Transport))

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	srv := mcpserver.New(expenseService, version, appLogger)

	switch cfg.MCP.Transport {
	case "http":
		httpServer := srv.NewHTTPServer()
		go func() {
			addr := ":" + cfg.MCP.Port
			appLogger.Info("MCP server listening", zap.String("address", addr))
			if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Fatal("Server failed", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		appLogger.Info("Shutting down server")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			appLogger.Error("Server shutdown error", zap.Error(err))
		}
	default:
		if err := srv.ServeStdio(); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}
}
