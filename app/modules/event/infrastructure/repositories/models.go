package eventdb

import (
	"time"

	"github.com/uptrace/bun"
)

// EventType is the axis on which the one-per-type registration rule is
// enforced.
type EventType string

const (
	EventTypeTechnical    EventType = "technical"
	EventTypeNonTechnical EventType = "non-technical"
)

// IsValid reports whether t is one of the known event types.
func (t EventType) IsValid() bool {
	return t == EventTypeTechnical || t == EventTypeNonTechnical
}

// Event is a catalog entry. It is created and edited by administrators and
// read-only to the rule engine.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,unique,notnull" json:"slug"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	EventType   EventType `bun:"event_type,notnull,type:varchar(20)" json:"event_type"`
	IsTeamEvent bool      `bun:"is_team_event,notnull,default:false" json:"is_team_event"`
	MinTeamSize int       `bun:"min_team_size,notnull,default:1" json:"min_team_size"`
	MaxTeamSize int       `bun:"max_team_size,notnull,default:1" json:"max_team_size"`
	IconClass   string    `bun:"icon_class,notnull,default:'fas fa-code'" json:"icon_class"`
	StartTime   *time.Time `bun:"start_time,nullzero" json:"start_time,omitempty"`
	EndTime     *time.Time `bun:"end_time,nullzero" json:"end_time,omitempty"`
	EventDate   *time.Time `bun:"event_date,nullzero,type:date" json:"event_date,omitempty"`
	Duration    *string    `bun:"duration,nullzero" json:"duration,omitempty"`
	Venue       *string    `bun:"venue,nullzero" json:"venue,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
