package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	logger := cmd.NewLogger(cfg.LogLevel).With("service", "sales")
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := cmd.OpenResources(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := resources.Close(); err != nil {
			logger.Error("close resources", "error", err)
		}
	}()

	if err := postgres.MigrateSales(resources.DB); err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(cfg, resources, logger)
	defer func() {
		if err := root.Close(); err != nil {
			logger.Error("close publisher", "error", err)
		}
	}()

	logger.Info("sales service starting")
	if err := root.RunSales(ctx); err != nil {
		return err
	}
	logger.Info("sales service stopped")
	return nil
}
