package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"voiceledger/internal/amqp"
	"voiceledger/internal/backend"
	"voiceledger/internal/budget"
	"voiceledger/internal/config"
	"voiceledger/internal/ledger"
	applog "voiceledger/internal/log"
	"voiceledger/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	stores, err := backend.New(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, slog.Default())
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer stores.Close()

	// Publish sync events only when a broker is explicitly configured;
	// the ledger works standalone without one.
	var publisher ledger.Publisher
	if os.Getenv("AMQP_URL") != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledgerSvc := ledger.New(stores.LedgerStore, publisher)
	if err := ledgerSvc.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	budgetSvc := budget.New(stores.BudgetStore)
	if err := budgetSvc.Load(ctx); err != nil {
		logger.Error("Failed to load budgets", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting voiceledger session", "backend", cfg.DataBackend)

	runner := session.NewRunner(ledgerSvc, budgetSvc, logger)
	if err := runner.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Session closed")
}
