package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/barbox/barbox-admin/cmd/barbox/cli"
	"github.com/barbox/barbox-admin/internal/app"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	console, err := app.NewConsole(ctx, cfg, logger)
	if err != nil {
		logger.Error("start console", slog.Any("error", err))
		os.Exit(1)
	}
	code := cli.Run(ctx, console, os.Args[1:], cli.Options{})
	if err := console.Close(); err != nil {
		logger.Warn("close console", slog.Any("error", err))
	}
	os.Exit(code)
}
