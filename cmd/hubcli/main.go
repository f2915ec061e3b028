// Package main implements hubcli, a terminal front-end for the import/export
// inventory backend: browse the catalog, publish export listings, and record
// import transactions against available stock.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/bootstrap"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config", cfg.String())

	app, err := bootstrap.NewApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize clients: %w", err)
	}

	return newRootCmd(app).ExecuteContext(ctx)
}
