package registrationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/db/pgerr"
)

// RegistrationDBImpl is the bun-backed registration repository.
type RegistrationDBImpl struct{}

var _ Repository = (*RegistrationDBImpl)(nil)

func (r *RegistrationDBImpl) Create(ctx context.Context, db bun.IDB, registration *Registration) error {
	registration.RegisterNumber = NormalizeRegisterNumber(registration.RegisterNumber)
	_, err := db.NewInsert().Model(registration).Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateForEvent
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *RegistrationDBImpl) Update(ctx context.Context, db bun.IDB, registration *Registration) error {
	registration.RegisterNumber = NormalizeRegisterNumber(registration.RegisterNumber)
	res, err := db.NewUpdate().
		Model(registration).
		WherePK().
		ExcludeColumn("registered_at").
		Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateForEvent
		}
		return fmt.Errorf("failed to update registration: %w", err)
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

// Delete removes a registration. Rows still acting as a team lead are
// rejected; the reconcile sweep is the only path that removes lead rows,
// after the team itself is gone.
func (r *RegistrationDBImpl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	registration, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if registration.IsTeamLead {
		return ErrLeadHasTeam
	}
	_, err = db.NewDelete().Model((*Registration)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationDBImpl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Registration, error) {
	registration := &Registration{}
	err := db.NewSelect().
		Model(registration).
		Relation("Event").
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (r *RegistrationDBImpl) GetByNumberAndEvent(ctx context.Context, db bun.IDB, registerNumber string, eventID int64) (*Registration, error) {
	registration := &Registration{}
	err := db.NewSelect().
		Model(registration).
		Relation("Event").
		Where("upper(r.register_number) = ?", NormalizeRegisterNumber(registerNumber)).
		Where("r.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (r *RegistrationDBImpl) ListByNumber(ctx context.Context, db bun.IDB, registerNumber string, excludeID int64) ([]Registration, error) {
	var registrations []Registration
	q := db.NewSelect().
		Model(&registrations).
		Relation("Event").
		Where("upper(r.register_number) = ?", NormalizeRegisterNumber(registerNumber))
	if excludeID != 0 {
		q = q.Where("r.id != ?", excludeID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *RegistrationDBImpl) ListLeads(ctx context.Context, db bun.IDB) ([]Registration, error) {
	var registrations []Registration
	err := db.NewSelect().
		Model(&registrations).
		Relation("Event").
		Where("r.is_team_lead = TRUE").
		Order("r.registered_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// AcquireSubmissionLock takes a transaction-scoped advisory lock keyed on the
// normalized register number. It must be called inside a transaction; the
// lock releases on commit or rollback.
func (r *RegistrationDBImpl) AcquireSubmissionLock(ctx context.Context, db bun.IDB, registerNumber string) error {
	_, err := db.NewRaw(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		NormalizeRegisterNumber(registerNumber),
	).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire submission lock: %w", err)
	}
	return nil
}
