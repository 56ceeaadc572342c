package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"renewcalc/internal/charts"
	"renewcalc/internal/config"
	"renewcalc/internal/logger"
	"renewcalc/internal/server"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("service stopped with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Configure(logger.GetGlobalLogger(), cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	charts.Init()

	logger.Info("starting renewable feasibility service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"version":     config.GetVersion(),
	})

	srv, err := server.NewServerFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Run(ctx)
}
