package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/db/pgerr"
)

func (r *TeamDBImpl) AddMember(ctx context.Context, db bun.IDB, member *TeamMember) error {
	_, err := db.NewInsert().Model(member).Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateMember
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (r *TeamDBImpl) UpdateMember(ctx context.Context, db bun.IDB, member *TeamMember) error {
	res, err := db.NewUpdate().
		Model(member).
		WherePK().
		ExcludeColumn("added_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *TeamDBImpl) RemoveMember(ctx context.Context, db bun.IDB, memberID int64) error {
	res, err := db.NewDelete().Model((*TeamMember)(nil)).Where("id = ?", memberID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *TeamDBImpl) GetMember(ctx context.Context, db bun.IDB, teamID, registrationID int64) (*TeamMember, error) {
	member := &TeamMember{}
	err := db.NewSelect().
		Model(member).
		Relation("Registration").
		Where("tm.team_id = ?", teamID).
		Where("tm.registration_id = ?", registrationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (r *TeamDBImpl) GetMemberByID(ctx context.Context, db bun.IDB, memberID int64) (*TeamMember, error) {
	member := &TeamMember{}
	err := db.NewSelect().
		Model(member).
		Relation("Registration").
		Where("tm.id = ?", memberID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (r *TeamDBImpl) ListMembers(ctx context.Context, db bun.IDB, teamID int64) ([]TeamMember, error) {
	var members []TeamMember
	err := db.NewSelect().
		Model(&members).
		Relation("Registration").
		Where("tm.team_id = ?", teamID).
		Order("tm.added_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *TeamDBImpl) ListMembershipsByRegistration(ctx context.Context, db bun.IDB, registrationID int64) ([]TeamMember, error) {
	var members []TeamMember
	err := db.NewSelect().
		Model(&members).
		Relation("Team").
		Where("tm.registration_id = ?", registrationID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *TeamDBImpl) Counts(ctx context.Context, db bun.IDB, teamID int64) (TeamCounts, error) {
	var rows []struct {
		Status MemberStatus `bun:"status"`
		Count  int          `bun:"count"`
	}
	err := db.NewSelect().
		Model((*TeamMember)(nil)).
		Column("status").
		ColumnExpr("count(*) AS count").
		Where("tm.team_id = ?", teamID).
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return TeamCounts{}, fmt.Errorf("failed to count team members: %w", err)
	}

	var counts TeamCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case MemberStatusJoined:
			counts.Joined += row.Count
		case MemberStatusPending:
			counts.Pending += row.Count
		}
	}
	return counts, nil
}
