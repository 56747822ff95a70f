package teamservice

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
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/observability"
	"github.com/artifa-fest/registration/internal/results"
)

// DB is the transactional surface the service needs from *bun.DB.
type DB interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// TeamService drives the team lifecycle: creation, invites, membership
// edits and the finalization gate.
type TeamService struct {
	teams         teamdb.Repository
	registrations registrationdb.Repository
	events        eventdb.Repository
	eligibility   eligibilityservice.Checker
	db            DB
	logger        *slog.Logger
	metrics       observability.OperationMetrics
	tracer        trace.Tracer
}

var _ Service = (*TeamService)(nil)

// NewTeamService creates a new TeamService.
func NewTeamService(
	teams teamdb.Repository,
	registrations registrationdb.Repository,
	events eventdb.Repository,
	eligibility eligibilityservice.Checker,
	db DB,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *TeamService {
	return &TeamService{
		teams:         teams,
		registrations: registrations,
		events:        events,
		eligibility:   eligibility,
		db:            db,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

func (s *TeamService) withTelemetry(
	ctx context.Context,
	operationName string,
	teamID int64,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.Int64("team_id", teamID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "TeamService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "TeamService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Int64("team_id", teamID),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "TeamService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operationName),
			slog.Int64("team_id", teamID),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "TeamService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.metrics.RecordOperationFailure(ctx, operationName, "TeamService")
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "TeamService")
	return result, nil
}

// IsBusinessRejection reports whether err is a rule violation that should
// surface as a Failure payload rather than an infrastructure error. The
// registration coordinator uses it to classify per-member outcomes.
func IsBusinessRejection(err error) bool {
	return errors.Is(err, ErrNotTeamEvent) ||
		errors.Is(err, ErrTeamFull) ||
		errors.Is(err, ErrCannotRemoveLead) ||
		errors.Is(err, ErrNotPending) ||
		errors.Is(err, ErrBelowMinimum) ||
		errors.Is(err, ErrAboveMaximum) ||
		errors.Is(err, ErrAlreadyInAnotherTeam) ||
		errors.Is(err, ErrTeamEventMismatch) ||
		errors.Is(err, teamdb.ErrNameTaken) ||
		errors.Is(err, teamdb.ErrDuplicateMember) ||
		errors.Is(err, registrationdb.ErrDuplicateForEvent) ||
		errors.Is(err, eligibilityservice.ErrAlreadyRegisteredSameType) ||
		errors.Is(err, eligibilityservice.ErrLeadConflict)
}

func isBusinessRejection(err error) bool {
	return IsBusinessRejection(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, registrationdb.ErrNotFound)
}

// refreshLeadMemberCount recomputes the team's member count and writes it
// onto the lead's registration row, which caches it for listings.
func (s *TeamService) refreshLeadMemberCount(ctx context.Context, tx bun.IDB, team *teamdb.Team) (teamdb.TeamCounts, error) {
	counts, err := s.teams.Counts(ctx, tx, team.ID)
	if err != nil {
		return teamdb.TeamCounts{}, fmt.Errorf("failed to count team members: %w", err)
	}
	lead, err := s.registrations.GetByID(ctx, tx, team.CreatedByID)
	if err != nil {
		return teamdb.TeamCounts{}, fmt.Errorf("failed to load team lead: %w", err)
	}
	lead.TeamMembers = counts.Total
	if err := s.registrations.Update(ctx, tx, lead); err != nil {
		return teamdb.TeamCounts{}, fmt.Errorf("failed to update team lead cache: %w", err)
	}
	return counts, nil
}

func stampTeamFields(reg *registrationdb.Registration, team *teamdb.Team, isLead bool, memberCount int) {
	reg.TeamID = &team.ID
	reg.TeamName = team.Name
	reg.TeamPassword = team.Password
	reg.IsTeamLead = isLead
	if isLead {
		reg.TeamMembers = memberCount
	} else {
		reg.TeamMembers = 0
	}
}

func clearTeamFields(reg *registrationdb.Registration) {
	reg.TeamID = nil
	reg.TeamName = ""
	reg.TeamPassword = ""
	reg.TeamMembers = 0
	reg.IsTeamLead = false
}
