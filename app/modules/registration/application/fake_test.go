package registrationservice

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
)

// FakeRegistrationRepository provides a programmable stub for the
// registrationdb.Repository interface.
type FakeRegistrationRepository struct {
	trace []string

	CreateFunc                func(ctx context.Context, db bun.IDB, registration *registrationdb.Registration) error
	UpdateFunc                func(ctx context.Context, db bun.IDB, registration *registrationdb.Registration) error
	DeleteFunc                func(ctx context.Context, db bun.IDB, id int64) error
	GetByIDFunc               func(ctx context.Context, db bun.IDB, id int64) (*registrationdb.Registration, error)
	GetByNumberAndEventFunc   func(ctx context.Context, db bun.IDB, registerNumber string, eventID int64) (*registrationdb.Registration, error)
	ListByNumberFunc          func(ctx context.Context, db bun.IDB, registerNumber string, excludeID int64) ([]registrationdb.Registration, error)
	ListLeadsFunc             func(ctx context.Context, db bun.IDB) ([]registrationdb.Registration, error)
	AcquireSubmissionLockFunc func(ctx context.Context, db bun.IDB, registerNumber string) error
}

func NewFakeRegistrationRepository() *FakeRegistrationRepository {
	return &FakeRegistrationRepository{trace: []string{}}
}

func (f *FakeRegistrationRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRegistrationRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRegistrationRepository) Create(ctx context.Context, db bun.IDB, registration *registrationdb.Registration) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, registration)
	}
	registration.ID = 1
	return nil
}

func (f *FakeRegistrationRepository) Update(ctx context.Context, db bun.IDB, registration *registrationdb.Registration) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, registration)
	}
	return nil
}

func (f *FakeRegistrationRepository) Delete(ctx context.Context, db bun.IDB, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeRegistrationRepository) GetByID(ctx context.Context, db bun.IDB, id int64) (*registrationdb.Registration, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeRegistrationRepository) GetByNumberAndEvent(ctx context.Context, db bun.IDB, registerNumber string, eventID int64) (*registrationdb.Registration, error) {
	f.record("GetByNumberAndEvent")
	if f.GetByNumberAndEventFunc != nil {
		return f.GetByNumberAndEventFunc(ctx, db, registerNumber, eventID)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeRegistrationRepository) ListByNumber(ctx context.Context, db bun.IDB, registerNumber string, excludeID int64) ([]registrationdb.Registration, error) {
	f.record("ListByNumber")
	if f.ListByNumberFunc != nil {
		return f.ListByNumberFunc(ctx, db, registerNumber, excludeID)
	}
	return nil, nil
}

func (f *FakeRegistrationRepository) ListLeads(ctx context.Context, db bun.IDB) ([]registrationdb.Registration, error) {
	f.record("ListLeads")
	if f.ListLeadsFunc != nil {
		return f.ListLeadsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRegistrationRepository) AcquireSubmissionLock(ctx context.Context, db bun.IDB, registerNumber string) error {
	f.record("AcquireSubmissionLock")
	if f.AcquireSubmissionLockFunc != nil {
		return f.AcquireSubmissionLockFunc(ctx, db, registerNumber)
	}
	return nil
}

var _ registrationdb.Repository = (*FakeRegistrationRepository)(nil)

// FakeIdentityRepository provides a programmable stub for the
// registrationdb.IdentityRepository interface.
type FakeIdentityRepository struct {
	trace []string

	CreateFunc      func(ctx context.Context, db bun.IDB, identity *registrationdb.Identity) error
	GetByNumberFunc func(ctx context.Context, db bun.IDB, registerNumber string) (*registrationdb.Identity, error)
}

func NewFakeIdentityRepository() *FakeIdentityRepository {
	return &FakeIdentityRepository{trace: []string{}}
}

func (f *FakeIdentityRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeIdentityRepository) Create(ctx context.Context, db bun.IDB, identity *registrationdb.Identity) error {
	f.trace = append(f.trace, "Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, identity)
	}
	identity.ID = 1
	return nil
}

func (f *FakeIdentityRepository) GetByNumber(ctx context.Context, db bun.IDB, registerNumber string) (*registrationdb.Identity, error) {
	f.trace = append(f.trace, "GetByNumber")
	if f.GetByNumberFunc != nil {
		return f.GetByNumberFunc(ctx, db, registerNumber)
	}
	return nil, registrationdb.ErrIdentityNotFound
}

var _ registrationdb.IdentityRepository = (*FakeIdentityRepository)(nil)

// FakeEventRepository provides a programmable stub for the
// eventdb.Repository interface.
type FakeEventRepository struct {
	GetByIDFunc func(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error)
}

func (f *FakeEventRepository) Create(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	return nil
}

func (f *FakeEventRepository) Update(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	return nil
}

func (f *FakeEventRepository) GetByID(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*eventdb.Event, error) {
	return nil, eventdb.ErrNotFound
}

func (f *FakeEventRepository) List(ctx context.Context, db bun.IDB) ([]eventdb.Event, error) {
	return nil, nil
}

func (f *FakeEventRepository) ListByType(ctx context.Context, db bun.IDB, eventType eventdb.EventType) ([]eventdb.Event, error) {
	return nil, nil
}

var _ eventdb.Repository = (*FakeEventRepository)(nil)

// fakeChecker stubs the eligibility check.
type fakeChecker struct {
	err error
}

func (f *fakeChecker) CheckWithin(ctx context.Context, db bun.IDB, registerNumber string, event *eventdb.Event, excludeRegistrationID int64) error {
	return f.err
}

// fakeComposer stubs the transaction-composable team operations.
type fakeComposer struct {
	CreateTeamWithinFunc func(ctx context.Context, tx bun.IDB, event *eventdb.Event, founder *registrationdb.Registration, name, description string) (*teamdb.Team, string, error)
	AddMemberWithinFunc  func(ctx context.Context, tx bun.IDB, team *teamdb.Team, details teamservice.MemberDetails) (*teamdb.TeamMember, *registrationdb.Registration, teamdb.TeamCounts, error)
}

func (f *fakeComposer) CreateTeamWithin(ctx context.Context, tx bun.IDB, event *eventdb.Event, founder *registrationdb.Registration, name, description string) (*teamdb.Team, string, error) {
	if f.CreateTeamWithinFunc != nil {
		return f.CreateTeamWithinFunc(ctx, tx, event, founder, name, description)
	}
	return &teamdb.Team{ID: 1, Name: name, EventID: event.ID, CreatedByID: founder.ID}, "s3cret", nil
}

func (f *fakeComposer) AddMemberWithin(ctx context.Context, tx bun.IDB, team *teamdb.Team, details teamservice.MemberDetails) (*teamdb.TeamMember, *registrationdb.Registration, teamdb.TeamCounts, error) {
	if f.AddMemberWithinFunc != nil {
		return f.AddMemberWithinFunc(ctx, tx, team, details)
	}
	return &teamdb.TeamMember{TeamID: team.ID, Status: teamdb.MemberStatusPending}, nil, teamdb.TeamCounts{}, nil
}

var _ teamservice.Composer = (*fakeComposer)(nil)

// fakeDB runs the transaction body against a zero bun.Tx. Repositories are
// faked, so no statement ever reaches it.
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
