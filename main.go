package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/artifa-fest/registration/app"
	"github.com/artifa-fest/registration/config"
	"github.com/artifa-fest/registration/internal/observability"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := application.Start(ctx); err != nil {
		log.Fatalf("failed to start app: %v", err)
	}

	metricsErr := observability.ServeMetrics(cfg.Observability.MetricsAddress, application.MetricsRegistry())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	application.Logger.Info("Registration engine running",
		"metrics_address", cfg.Observability.MetricsAddress,
		"sweep_enabled", cfg.Reconcile.Enabled,
	)

	select {
	case <-interrupt:
		application.Logger.Info("Shutdown signal received")
	case err := <-metricsErr:
		application.Logger.Error("Metrics server stopped", "error", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := application.Close(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	application.Logger.Info("Application shut down gracefully")
}
