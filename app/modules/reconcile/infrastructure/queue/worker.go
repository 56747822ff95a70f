package reconcilequeue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	reconcileservice "github.com/artifa-fest/registration/app/modules/reconcile/application"
)

// SweepWorker runs the reconciliation sweep when a SweepJob fires.
type SweepWorker struct {
	river.WorkerDefaults[SweepJob]
	sweeper reconcileservice.Service
	logger  *slog.Logger
}

// NewSweepWorker creates a new SweepWorker.
func NewSweepWorker(sweeper reconcileservice.Service, logger *slog.Logger) *SweepWorker {
	return &SweepWorker{sweeper: sweeper, logger: logger}
}

// Work executes one sweep. River retries on error with its default
// backoff.
func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepJob]) error {
	w.logger.InfoContext(ctx, "Running registration sweep", slog.Int64("job_id", job.ID))

	result, err := w.sweeper.SweepLeadViolations(ctx)
	if err != nil {
		return fmt.Errorf("registration sweep failed: %w", err)
	}

	if report, ok := result.Success.(*reconcileservice.SweepReportPayload); ok {
		w.logger.InfoContext(ctx, "Registration sweep finished",
			slog.Int64("job_id", job.ID),
			slog.Int("leads_checked", report.LeadsChecked),
			slog.Int("violations_found", report.ViolationsFound),
		)
	}
	return nil
}
