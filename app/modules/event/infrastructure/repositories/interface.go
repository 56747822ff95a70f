package eventdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the storage contract for the event catalog. Methods take a
// bun.IDB so callers can compose them into a surrounding transaction.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, event *Event) error
	Update(ctx context.Context, db bun.IDB, event *Event) error
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Event, error)
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Event, error)
	List(ctx context.Context, db bun.IDB) ([]Event, error)
	ListByType(ctx context.Context, db bun.IDB, eventType EventType) ([]Event, error)
}
