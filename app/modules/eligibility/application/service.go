package eligibilityservice

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
	"github.com/artifa-fest/registration/internal/observability"
	"github.com/artifa-fest/registration/internal/results"
)

// DB is the transactional surface the service needs from *bun.DB.
type DB interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// EligibilityService enforces the one-technical-plus-one-non-technical rule.
type EligibilityService struct {
	registrations registrationdb.Repository
	db            DB
	logger        *slog.Logger
	metrics       observability.OperationMetrics
	tracer        trace.Tracer
}

var _ Service = (*EligibilityService)(nil)

// NewEligibilityService creates a new EligibilityService.
func NewEligibilityService(
	registrations registrationdb.Repository,
	db DB,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *EligibilityService {
	return &EligibilityService{
		registrations: registrations,
		db:            db,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

func (s *EligibilityService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "EligibilityService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "EligibilityService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("register_number", registerNumber),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "EligibilityService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "EligibilityService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.metrics.RecordOperationFailure(ctx, operationName, "EligibilityService")
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "EligibilityService")
	return result, nil
}
