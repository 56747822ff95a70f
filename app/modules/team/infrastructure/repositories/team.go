package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/db/pgerr"
)

// TeamDBImpl is the bun-backed team repository.
type TeamDBImpl struct{}

var _ Repository = (*TeamDBImpl)(nil)

func (r *TeamDBImpl) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	_, err := db.NewInsert().Model(team).Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamDBImpl) UpdateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	team.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(team).
		WherePK().
		ExcludeColumn("created_at").
		Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to update team: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTeam removes the team and cascades to its members.
func (r *TeamDBImpl) DeleteTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if _, err := db.NewDelete().Model((*TeamMember)(nil)).Where("team_id = ?", teamID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete team members: %w", err)
	}
	if _, err := db.NewDelete().Model((*Team)(nil)).Where("id = ?", teamID).Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (r *TeamDBImpl) GetTeamByID(ctx context.Context, db bun.IDB, teamID int64) (*Team, error) {
	team := &Team{}
	err := db.NewSelect().
		Model(team).
		Relation("Event").
		Relation("CreatedBy").
		Where("t.id = ?", teamID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *TeamDBImpl) GetTeamByNameAndEvent(ctx context.Context, db bun.IDB, name string, eventID int64) (*Team, error) {
	team := &Team{}
	err := db.NewSelect().
		Model(team).
		Relation("Event").
		Relation("CreatedBy").
		Where("lower(t.name) = lower(?)", name).
		Where("t.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return team, nil
}
