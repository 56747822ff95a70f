package registrationdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the storage contract for registrations. Methods take a
// bun.IDB so the coordinator can compose reads and writes into one
// transaction.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, registration *Registration) error
	Update(ctx context.Context, db bun.IDB, registration *Registration) error
	Delete(ctx context.Context, db bun.IDB, id int64) error
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Registration, error)
	// GetByNumberAndEvent matches the register number case-insensitively.
	GetByNumberAndEvent(ctx context.Context, db bun.IDB, registerNumber string, eventID int64) (*Registration, error)
	// ListByNumber returns every registration for a register number with its
	// Event loaded, optionally excluding one row (0 means no exclusion).
	ListByNumber(ctx context.Context, db bun.IDB, registerNumber string, excludeID int64) ([]Registration, error)
	// ListLeads returns all team-lead registrations with their Events loaded.
	ListLeads(ctx context.Context, db bun.IDB) ([]Registration, error)
	// AcquireSubmissionLock serializes check-then-act sequences for one
	// register number for the duration of the surrounding transaction.
	AcquireSubmissionLock(ctx context.Context, db bun.IDB, registerNumber string) error
}

// IdentityRepository is the storage contract for credential records.
type IdentityRepository interface {
	Create(ctx context.Context, db bun.IDB, identity *Identity) error
	GetByNumber(ctx context.Context, db bun.IDB, registerNumber string) (*Identity, error)
}
