// Package main содержит точку входа для воркера приветственных писем.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/drinkshop/auth-service/internal/app/welcomesender"
	"github.com/drinkshop/auth-service/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting welcome-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := welcomesender.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize welcome-sender", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("welcome-sender stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("welcome-sender stopped gracefully")
}
