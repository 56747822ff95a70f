package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	eligibilityservice "github.com/artifa-fest/registration/app/modules/eligibility/application"
	eventservice "github.com/artifa-fest/registration/app/modules/event/application"
	reconcileservice "github.com/artifa-fest/registration/app/modules/reconcile/application"
	reconcilequeue "github.com/artifa-fest/registration/app/modules/reconcile/infrastructure/queue"
	registrationservice "github.com/artifa-fest/registration/app/modules/registration/application"
	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
	"github.com/artifa-fest/registration/config"
	"github.com/artifa-fest/registration/internal/db/bundb"
	"github.com/artifa-fest/registration/internal/observability"
)

// App wires the services over one shared database connection.
type App struct {
	Cfg *config.Config

	EventService        eventservice.Service
	EligibilityService  eligibilityservice.Service
	TeamService         teamservice.Service
	RegistrationService registrationservice.Service
	ReconcileService    reconcileservice.Service
	ReconcileQueue      reconcilequeue.QueueService

	Logger *slog.Logger

	db       *bundb.DBService
	metrics  *observability.PrometheusMetrics
	registry *prometheus.Registry
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.LogLevel)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	db := dbService.GetDB()

	registry := observability.NewRegistry()
	metrics := observability.NewPrometheusMetrics(registry)
	tracer := otel.Tracer("registration")

	eligibility := eligibilityservice.NewEligibilityService(
		dbService.RegistrationDB, db, logger, metrics, tracer)
	events := eventservice.NewEventService(
		dbService.EventDB, db, logger, metrics, tracer)
	teams := teamservice.NewTeamService(
		dbService.TeamDB, dbService.RegistrationDB, dbService.EventDB,
		eligibility, db, logger, metrics, tracer)
	registrations := registrationservice.NewRegistrationService(
		dbService.RegistrationDB, dbService.IdentityDB, dbService.EventDB,
		eligibility, teams, db, logger, metrics, tracer)
	reconciler := reconcileservice.NewReconcileService(
		dbService.RegistrationDB, dbService.TeamDB, db, logger, metrics, tracer)

	app := &App{
		Cfg:                 cfg,
		EventService:        events,
		EligibilityService:  eligibility,
		TeamService:         teams,
		RegistrationService: registrations,
		ReconcileService:    reconciler,
		Logger:              logger,
		db:                  dbService,
		metrics:             metrics,
		registry:            registry,
	}

	if cfg.Reconcile.Enabled {
		queue, err := reconcilequeue.NewService(
			ctx, cfg.Postgres.DSN, reconciler, cfg.Reconcile.SweepInterval, logger, metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize reconcile queue: %w", err)
		}
		app.ReconcileQueue = queue
	}

	return app, nil
}

// Start starts the background components.
func (app *App) Start(ctx context.Context) error {
	if app.ReconcileQueue != nil {
		if err := app.ReconcileQueue.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reconcile queue: %w", err)
		}
	}
	return nil
}

// Close shuts down the background components and the database connection.
func (app *App) Close(ctx context.Context) error {
	var firstErr error
	if app.ReconcileQueue != nil {
		if err := app.ReconcileQueue.Stop(ctx); err != nil {
			firstErr = err
		}
	}
	if err := app.db.GetDB().Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

// MetricsRegistry exposes the Prometheus registry for the metrics server.
func (app *App) MetricsRegistry() *prometheus.Registry {
	return app.registry
}
