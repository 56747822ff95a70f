package registrationdb

import (
	"strings"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
)

// NormalizeRegisterNumber folds a register number to its canonical
// case-insensitive key.
func NormalizeRegisterNumber(registerNumber string) string {
	return strings.ToUpper(strings.TrimSpace(registerNumber))
}

// Registration is one participant's entry for one event. The pair
// (register_number, event_id) is unique at the storage layer.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`

	ID             int64  `bun:"id,pk,autoincrement" json:"id"`
	RegisterNumber string `bun:"register_number,notnull,unique:uq_registrations_register_number_event" json:"register_number"`
	FullName       string `bun:"full_name,notnull" json:"full_name"`
	Year           string `bun:"year,notnull,type:varchar(1)" json:"year"`
	Department     string `bun:"department,notnull,type:varchar(10)" json:"department"`
	PhoneNumber    string `bun:"phone_number,nullzero" json:"phone_number,omitempty"`
	Email          string `bun:"email,nullzero" json:"email,omitempty"`
	IsVerified     bool   `bun:"is_verified,notnull,default:false" json:"is_verified"`

	EventID      int64     `bun:"event_id,notnull,unique:uq_registrations_register_number_event" json:"event_id"`
	RegisteredAt time.Time `bun:"registered_at,nullzero,notnull,default:current_timestamp" json:"registered_at"`

	// Team linkage. TeamMember rows are the source of truth; these fields are
	// a derived cache refreshed on every membership mutation.
	TeamID       *int64 `bun:"team_id,nullzero" json:"team_id,omitempty"`
	TeamName     string `bun:"team_name,nullzero" json:"team_name,omitempty"`
	TeamMembers  int    `bun:"team_members,notnull,default:0" json:"team_members"`
	TeamPassword string `bun:"team_password,nullzero" json:"-"`
	IsTeamLead   bool   `bun:"is_team_lead,notnull,default:false" json:"is_team_lead"`

	Event *eventdb.Event `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
}

// Identity is the credential record linking a register number to a login.
// Only the bcrypt hash of the password is stored.
type Identity struct {
	bun.BaseModel `bun:"table:identities,alias:i"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	RegisterNumber string    `bun:"register_number,unique,notnull" json:"register_number"`
	Email          string    `bun:"email,nullzero" json:"email,omitempty"`
	PasswordHash   string    `bun:"password_hash,nullzero" json:"-"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
