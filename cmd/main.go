package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"provider_map/internal/application"
	"provider_map/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logx.New(os.Stdout, slog.LevelInfo, false)
	slog.SetDefault(log)

	if err := application.Run(ctx); err != nil {
		log.Error("application failed", logx.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
