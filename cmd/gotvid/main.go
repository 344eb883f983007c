package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gotvi/gotvi-backend/internal/classify"
	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/export"
	"github.com/gotvi/gotvi-backend/internal/llm/bggpt"
	"github.com/gotvi/gotvi-backend/internal/pipeline"
	"github.com/gotvi/gotvi-backend/internal/repository"
	"github.com/gotvi/gotvi-backend/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeDB, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	if err := repository.HealthCheck(ctx, db, 5*time.Second, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	inventoryRepo := repository.NewInventoryRepository(db, logger)
	receiptsRepo := repository.NewReceiptRepository(db, logger)

	model := bggpt.NewClient(bggpt.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	classifier := classify.New(logger)
	processor := pipeline.NewProcessor(logger, model, classifier, inventoryRepo, receiptsRepo)
	exporter := export.NewService(receiptsRepo, logger)

	handler := server.NewHandler(processor, inventoryRepo, receiptsRepo, exporter, logger)
	app := server.NewApp(handler)

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := app.Listen(cfg.Server.HTTPAddr); err != nil {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
