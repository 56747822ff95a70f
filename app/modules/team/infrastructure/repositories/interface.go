package teamdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the storage contract for teams and their members. Methods
// take a bun.IDB so the lifecycle service can compose them into one
// transaction.
type Repository interface {
	CreateTeam(ctx context.Context, db bun.IDB, team *Team) error
	UpdateTeam(ctx context.Context, db bun.IDB, team *Team) error
	// DeleteTeam removes the team and all of its members.
	DeleteTeam(ctx context.Context, db bun.IDB, teamID int64) error
	GetTeamByID(ctx context.Context, db bun.IDB, teamID int64) (*Team, error)
	GetTeamByNameAndEvent(ctx context.Context, db bun.IDB, name string, eventID int64) (*Team, error)

	AddMember(ctx context.Context, db bun.IDB, member *TeamMember) error
	UpdateMember(ctx context.Context, db bun.IDB, member *TeamMember) error
	RemoveMember(ctx context.Context, db bun.IDB, memberID int64) error
	GetMember(ctx context.Context, db bun.IDB, teamID, registrationID int64) (*TeamMember, error)
	GetMemberByID(ctx context.Context, db bun.IDB, memberID int64) (*TeamMember, error)
	ListMembers(ctx context.Context, db bun.IDB, teamID int64) ([]TeamMember, error)
	ListMembershipsByRegistration(ctx context.Context, db bun.IDB, registrationID int64) ([]TeamMember, error)
	Counts(ctx context.Context, db bun.IDB, teamID int64) (TeamCounts, error)
}
