package reconcileservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/observability"
	"github.com/artifa-fest/registration/internal/results"
)

// DB is the transactional surface the sweeper needs from *bun.DB.
type DB interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// SweepViolation records one extra registration removed for a team lead.
type SweepViolation struct {
	RegisterNumber     string `json:"register_number"`
	LeadEventID        int64  `json:"lead_event_id"`
	RemovedEventID     int64  `json:"removed_event_id"`
	RemovedEventName   string `json:"removed_event_name"`
	MembershipsRemoved int    `json:"memberships_removed"`
}

// SweepReportPayload is the success payload for SweepLeadViolations.
type SweepReportPayload struct {
	LeadsChecked         int              `json:"leads_checked"`
	ViolationsFound      int              `json:"violations_found"`
	RegistrationsRemoved int              `json:"registrations_removed"`
	MembershipsRemoved   int              `json:"memberships_removed"`
	Violations           []SweepViolation `json:"violations,omitempty"`
}

// Service is the interface for the reconciliation sweeper.
type Service interface {
	SweepLeadViolations(ctx context.Context) (results.OperationResult, error)
}

// ReconcileService repairs data that slipped past the one-per-type rule,
// for example rows bulk-loaded before the rule existed. Team leads are the
// anchor: any other registration of the same type held by a lead's
// register number is removed along with its memberships.
type ReconcileService struct {
	registrations registrationdb.Repository
	teams         teamdb.Repository
	db            DB
	logger        *slog.Logger
	metrics       observability.OperationMetrics
	tracer        trace.Tracer
}

var _ Service = (*ReconcileService)(nil)

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(
	registrations registrationdb.Repository,
	teams teamdb.Repository,
	db DB,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *ReconcileService {
	return &ReconcileService{
		registrations: registrations,
		teams:         teams,
		db:            db,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
	}
}

// SweepLeadViolations scans every team lead and removes any other
// registration of the same event type held by the lead's register number.
// The whole sweep runs in one transaction so a partial repair never
// commits.
func (s *ReconcileService) SweepLeadViolations(ctx context.Context) (result results.OperationResult, err error) {
	operationName := "sweep_lead_violations"
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "ReconcileService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ReconcileService", time.Since(startTime))
	}()

	report := &SweepReportPayload{}
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		leads, err := s.registrations.ListLeads(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list team leads: %w", err)
		}
		report.LeadsChecked = len(leads)

		for i := range leads {
			lead := &leads[i]
			if lead.Event == nil {
				continue
			}
			if err := s.sweepLead(ctx, tx, lead, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Sweep failed", slog.Any("error", wrappedErr))
		s.metrics.RecordOperationFailure(ctx, operationName, "ReconcileService")
		span.RecordError(wrappedErr)
		return results.OperationResult{}, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ReconcileService")
	s.logger.InfoContext(ctx, "Sweep completed",
		slog.Int("leads_checked", report.LeadsChecked),
		slog.Int("violations_found", report.ViolationsFound),
		slog.Int("registrations_removed", report.RegistrationsRemoved),
	)
	return results.SuccessResult(report), nil
}

func (s *ReconcileService) sweepLead(ctx context.Context, tx bun.IDB, lead *registrationdb.Registration, report *SweepReportPayload) error {
	others, err := s.registrations.ListByNumber(ctx, tx, lead.RegisterNumber, lead.ID)
	if err != nil {
		return fmt.Errorf("failed to list registrations for %s: %w", lead.RegisterNumber, err)
	}

	for i := range others {
		other := &others[i]
		if other.Event == nil || other.Event.EventType != lead.Event.EventType {
			continue
		}
		// A second lead row for the same number is left for an operator;
		// deleting either team automatically is not safe.
		if other.IsTeamLead {
			s.logger.WarnContext(ctx, "Register number leads two teams of the same type",
				slog.String("register_number", lead.RegisterNumber),
				slog.Int64("event_id", other.EventID),
			)
			continue
		}
		report.ViolationsFound++

		memberships, err := s.teams.ListMembershipsByRegistration(ctx, tx, other.ID)
		if err != nil {
			return fmt.Errorf("failed to list memberships for registration %d: %w", other.ID, err)
		}
		for _, membership := range memberships {
			if err := s.teams.RemoveMember(ctx, tx, membership.ID); err != nil {
				return fmt.Errorf("failed to remove membership %d: %w", membership.ID, err)
			}
			report.MembershipsRemoved++
		}

		if err := s.registrations.Delete(ctx, tx, other.ID); err != nil {
			return fmt.Errorf("failed to delete registration %d: %w", other.ID, err)
		}
		report.RegistrationsRemoved++
		report.Violations = append(report.Violations, SweepViolation{
			RegisterNumber:     lead.RegisterNumber,
			LeadEventID:        lead.EventID,
			RemovedEventID:     other.EventID,
			RemovedEventName:   other.Event.Name,
			MembershipsRemoved: len(memberships),
		})
	}
	return nil
}
