package registrationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/db/pgerr"
)

// IdentityDBImpl is the bun-backed credential repository.
type IdentityDBImpl struct{}

var _ IdentityRepository = (*IdentityDBImpl)(nil)

func (r *IdentityDBImpl) Create(ctx context.Context, db bun.IDB, identity *Identity) error {
	identity.RegisterNumber = NormalizeRegisterNumber(identity.RegisterNumber)
	_, err := db.NewInsert().Model(identity).Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrIdentityTaken
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

func (r *IdentityDBImpl) GetByNumber(ctx context.Context, db bun.IDB, registerNumber string) (*Identity, error) {
	identity := &Identity{}
	err := db.NewSelect().
		Model(identity).
		Where("upper(i.register_number) = ?", NormalizeRegisterNumber(registerNumber)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return identity, nil
}
