package reconcilequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	reconcileservice "github.com/artifa-fest/registration/app/modules/reconcile/application"
	"github.com/artifa-fest/registration/internal/observability"
)

// QueueService schedules and runs the periodic reconciliation sweep.
type QueueService interface {
	// TriggerSweep enqueues a sweep to run immediately.
	TriggerSweep(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service is the River-backed queue for the reconcile module.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics observability.OperationMetrics
}

// NewService creates the River client with a periodic sweep job. River
// needs its own pgx pool; it cannot share the bun connection.
func NewService(
	ctx context.Context,
	dsn string,
	sweeper reconcileservice.Service,
	interval time.Duration,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSweepWorker(sweeper, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(interval),
				func() (river.JobArgs, *river.InsertOpts) {
					return SweepJob{}, &river.InsertOpts{
						UniqueOpts: river.UniqueOpts{ByArgs: true},
					}
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	logger.InfoContext(ctx, "Reconcile queue service initialized",
		slog.Duration("sweep_interval", interval))

	return &Service{
		client:  client,
		pool:    pool,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// TriggerSweep enqueues a sweep to run immediately.
func (s *Service) TriggerSweep(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "trigger_sweep", "river")
	_, err := s.client.Insert(ctx, SweepJob{}, &river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "trigger_sweep", "river")
		return fmt.Errorf("failed to enqueue sweep: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "trigger_sweep", "river")
	return nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Reconcile queue service started")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Reconcile queue service stopped")
	return nil
}
