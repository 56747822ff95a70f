package registrationservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	eligibilityservice "github.com/artifa-fest/registration/app/modules/eligibility/application"
	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
	"github.com/artifa-fest/registration/internal/observability"
	"github.com/artifa-fest/registration/internal/results"
)

// DB is the transactional surface the service needs from *bun.DB.
type DB interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// RegistrationService coordinates a full submission: duplicate and
// eligibility checks, the identity record, the registration row and, for
// team events, team creation with member invites, all in one transaction.
type RegistrationService struct {
	registrations registrationdb.Repository
	identities    registrationdb.IdentityRepository
	events        eventdb.Repository
	eligibility   eligibilityservice.Checker
	teams         teamservice.Composer
	db            DB
	logger        *slog.Logger
	metrics       observability.OperationMetrics
	tracer        trace.Tracer
}

var _ Service = (*RegistrationService)(nil)

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	registrations registrationdb.Repository,
	identities registrationdb.IdentityRepository,
	events eventdb.Repository,
	eligibility eligibilityservice.Checker,
	teams teamservice.Composer,
	db DB,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		identities:    identities,
		events:        events,
		eligibility:   eligibility,
		teams:         teams,
		db:            db,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

func (s *RegistrationService) withTelemetry(
	ctx context.Context,
	operationName string,
	registerNumber string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("register_number", registerNumber),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "RegistrationService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "RegistrationService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("register_number", registerNumber),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "RegistrationService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operationName),
			slog.String("register_number", registerNumber),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "RegistrationService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.metrics.RecordOperationFailure(ctx, operationName, "RegistrationService")
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "RegistrationService")
	return result, nil
}

// isSubmissionRejection reports whether err is a business outcome that
// should surface as a Failure payload rather than an error.
func isSubmissionRejection(err error) bool {
	return errors.Is(err, ErrIdentityConflict) ||
		errors.Is(err, ErrInvalidSubmission) ||
		errors.Is(err, registrationdb.ErrDuplicateForEvent) ||
		errors.Is(err, registrationdb.ErrLeadHasTeam) ||
		errors.Is(err, registrationdb.ErrNotFound) ||
		errors.Is(err, eventdb.ErrNotFound) ||
		errors.Is(err, eligibilityservice.ErrAlreadyRegisteredSameType) ||
		errors.Is(err, eligibilityservice.ErrLeadConflict) ||
		teamservice.IsBusinessRejection(err)
}
