package teamservice

import (
	"context"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// TeamOperationResult is the standard envelope returned by team operations.
type TeamOperationResult = results.OperationResult

// Composer exposes the team mutations that compose into a caller's
// transaction. The registration coordinator uses it so a submission, its
// team and the member invites commit or roll back as one unit.
type Composer interface {
	CreateTeamWithin(ctx context.Context, tx bun.IDB, event *eventdb.Event, founder *registrationdb.Registration, name, description string) (*teamdb.Team, string, error)
	AddMemberWithin(ctx context.Context, tx bun.IDB, team *teamdb.Team, details MemberDetails) (*teamdb.TeamMember, *registrationdb.Registration, teamdb.TeamCounts, error)
}

// Service is the interface for the team lifecycle service.
type Service interface {
	Composer
	CreateTeam(ctx context.Context, input CreateTeamInput) (TeamOperationResult, error)
	DeleteTeam(ctx context.Context, teamID int64) (TeamOperationResult, error)
	AddMember(ctx context.Context, input AddMemberInput) (TeamOperationResult, error)
	EditMember(ctx context.Context, input EditMemberInput) (TeamOperationResult, error)
	RemoveMember(ctx context.Context, teamID, memberID int64) (TeamOperationResult, error)
	AcceptInvite(ctx context.Context, teamID, registrationID int64) (TeamOperationResult, error)
	DeclineInvite(ctx context.Context, teamID, registrationID int64) (TeamOperationResult, error)
	FinalizeTeam(ctx context.Context, teamID int64) (TeamOperationResult, error)
}

// TeamOperationFailedPayload is the failure payload shared by team
// operations.
type TeamOperationFailedPayload struct {
	TeamID int64  `json:"team_id,omitempty"`
	Reason string `json:"reason"`
}
