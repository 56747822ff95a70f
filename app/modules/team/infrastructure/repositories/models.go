package teamdb

import (
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
)

// MemberStatus tracks a member's progress through the invite state machine.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusJoined   MemberStatus = "joined"
	MemberStatusDeclined MemberStatus = "declined"
)

// IsValid reports whether s is one of the known member statuses.
func (s MemberStatus) IsValid() bool {
	return s == MemberStatusPending || s == MemberStatusJoined || s == MemberStatusDeclined
}

// Team groups registrations for a team event. The pair (name, event_id) is
// unique at the storage layer; created_by identifies the team lead.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull,unique:uq_teams_name_event" json:"name"`
	EventID     int64     `bun:"event_id,notnull,unique:uq_teams_name_event" json:"event_id"`
	CreatedByID int64     `bun:"created_by_id,notnull" json:"created_by_id"`
	Password    string    `bun:"password,nullzero" json:"-"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Event     *eventdb.Event               `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
	CreatedBy *registrationdb.Registration `bun:"rel:belongs-to,join:created_by_id=id" json:"created_by,omitempty"`
	Members   []*TeamMember                `bun:"rel:has-many,join:id=team_id" json:"members,omitempty"`
}

// TeamMember binds a team to a registration; one row per
// (team_id, registration_id).
type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	ID             int64        `bun:"id,pk,autoincrement" json:"id"`
	TeamID         int64        `bun:"team_id,notnull,unique:uq_team_members_team_registration" json:"team_id"`
	RegistrationID int64        `bun:"registration_id,notnull,unique:uq_team_members_team_registration" json:"registration_id"`
	Status         MemberStatus `bun:"status,notnull,default:'pending',type:varchar(20)" json:"status"`
	AddedAt        time.Time    `bun:"added_at,nullzero,notnull,default:current_timestamp" json:"added_at"`
	JoinedAt       *time.Time   `bun:"joined_at,nullzero" json:"joined_at,omitempty"`

	Team         *Team                        `bun:"rel:belongs-to,join:team_id=id" json:"-"`
	Registration *registrationdb.Registration `bun:"rel:belongs-to,join:registration_id=id" json:"registration,omitempty"`
}

// TeamCounts summarizes a team's membership by status.
type TeamCounts struct {
	Joined  int `json:"joined"`
	Pending int `json:"pending"`
	Total   int `json:"total"`
}
