package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gift_ledger/internal/application"
	"gift_ledger/internal/config"
	"gift_ledger/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	if err := application.Run(ctx, cfg); err != nil {
		slog.Error("application.Run", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}
