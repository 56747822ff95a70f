package eventservice

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
)

// FakeEventRepository provides a programmable stub for the
// eventdb.Repository interface.
type FakeEventRepository struct {
	trace []string

	CreateFunc     func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
	UpdateFunc     func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
	GetByIDFunc    func(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error)
	GetBySlugFunc  func(ctx context.Context, db bun.IDB, slug string) (*eventdb.Event, error)
	ListFunc       func(ctx context.Context, db bun.IDB) ([]eventdb.Event, error)
	ListByTypeFunc func(ctx context.Context, db bun.IDB, eventType eventdb.EventType) ([]eventdb.Event, error)
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{trace: []string{}}
}

func (f *FakeEventRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEventRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepository) Create(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, event)
	}
	event.ID = 1
	return nil
}

func (f *FakeEventRepository) Update(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, event)
	}
	return nil
}

func (f *FakeEventRepository) GetByID(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*eventdb.Event, error) {
	f.record("GetBySlug")
	if f.GetBySlugFunc != nil {
		return f.GetBySlugFunc(ctx, db, slug)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) List(ctx context.Context, db bun.IDB) ([]eventdb.Event, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeEventRepository) ListByType(ctx context.Context, db bun.IDB, eventType eventdb.EventType) ([]eventdb.Event, error) {
	f.record("ListByType")
	if f.ListByTypeFunc != nil {
		return f.ListByTypeFunc(ctx, db, eventType)
	}
	return nil, nil
}

var _ eventdb.Repository = (*FakeEventRepository)(nil)

// fakeDB runs the transaction body against a zero bun.Tx.
type fakeDB struct {
	err error
}

func (f *fakeDB) RunInTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, bun.Tx{})
}

var _ DB = (*fakeDB)(nil)
