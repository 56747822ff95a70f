package teamservice

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
)

// FakeTeamRepository provides a programmable stub for the
// teamdb.Repository interface.
type FakeTeamRepository struct {
	trace []string

	CreateTeamFunc            func(ctx context.Context, db bun.IDB, team *teamdb.Team) error
	UpdateTeamFunc            func(ctx context.Context, db bun.IDB, team *teamdb.Team) error
	DeleteTeamFunc            func(ctx context.Context, db bun.IDB, teamID int64) error
	GetTeamByIDFunc           func(ctx context.Context, db bun.IDB, teamID int64) (*teamdb.Team, error)
	GetTeamByNameAndEventFunc func(ctx context.Context, db bun.IDB, name string, eventID int64) (*teamdb.Team, error)

	AddMemberFunc                     func(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error
	UpdateMemberFunc                  func(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error
	RemoveMemberFunc                  func(ctx context.Context, db bun.IDB, memberID int64) error
	GetMemberFunc                     func(ctx context.Context, db bun.IDB, teamID, registrationID int64) (*teamdb.TeamMember, error)
	GetMemberByIDFunc                 func(ctx context.Context, db bun.IDB, memberID int64) (*teamdb.TeamMember, error)
	ListMembersFunc                   func(ctx context.Context, db bun.IDB, teamID int64) ([]teamdb.TeamMember, error)
	ListMembershipsByRegistrationFunc func(ctx context.Context, db bun.IDB, registrationID int64) ([]teamdb.TeamMember, error)
	CountsFunc                        func(ctx context.Context, db bun.IDB, teamID int64) (teamdb.TeamCounts, error)
}

func NewFakeTeamRepository() *FakeTeamRepository {
	return &FakeTeamRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTeamRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTeamRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTeamRepository) CreateTeam(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("CreateTeam")
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, db, team)
	}
	team.ID = 1
	return nil
}

func (f *FakeTeamRepository) UpdateTeam(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("UpdateTeam")
	if f.UpdateTeamFunc != nil {
		return f.UpdateTeamFunc(ctx, db, team)
	}
	return nil
}

func (f *FakeTeamRepository) DeleteTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	f.record("DeleteTeam")
	if f.DeleteTeamFunc != nil {
		return f.DeleteTeamFunc(ctx, db, teamID)
	}
	return nil
}

func (f *FakeTeamRepository) GetTeamByID(ctx context.Context, db bun.IDB, teamID int64) (*teamdb.Team, error) {
	f.record("GetTeamByID")
	if f.GetTeamByIDFunc != nil {
		return f.GetTeamByIDFunc(ctx, db, teamID)
	}
	return nil, teamdb.ErrNotFound
}

func (f *FakeTeamRepository) GetTeamByNameAndEvent(ctx context.Context, db bun.IDB, name string, eventID int64) (*teamdb.Team, error) {
	f.record("GetTeamByNameAndEvent")
	if f.GetTeamByNameAndEventFunc != nil {
		return f.GetTeamByNameAndEventFunc(ctx, db, name, eventID)
	}
	return nil, teamdb.ErrNotFound
}

func (f *FakeTeamRepository) AddMember(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error {
	f.record("AddMember")
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, db, member)
	}
	member.ID = 1
	return nil
}

func (f *FakeTeamRepository) UpdateMember(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error {
	f.record("UpdateMember")
	if f.UpdateMemberFunc != nil {
		return f.UpdateMemberFunc(ctx, db, member)
	}
	return nil
}

func (f *FakeTeamRepository) RemoveMember(ctx context.Context, db bun.IDB, memberID int64) error {
	f.record("RemoveMember")
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, db, memberID)
	}
	return nil
}

func (f *FakeTeamRepository) GetMember(ctx context.Context, db bun.IDB, teamID, registrationID int64) (*teamdb.TeamMember, error) {
	f.record("GetMember")
	if f.GetMemberFunc != nil {
		return f.GetMemberFunc(ctx, db, teamID, registrationID)
	}
	return nil, teamdb.ErrMemberNotFound
}

func (f *FakeTeamRepository) GetMemberByID(ctx context.Context, db bun.IDB, memberID int64) (*teamdb.TeamMember, error) {
	f.record("GetMemberByID")
	if f.GetMemberByIDFunc != nil {
		return f.GetMemberByIDFunc(ctx, db, memberID)
	}
	return nil, teamdb.ErrMemberNotFound
}

func (f *FakeTeamRepository) ListMembers(ctx context.Context, db bun.IDB, teamID int64) ([]teamdb.TeamMember, error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeTeamRepository) ListMembershipsByRegistration(ctx context.Context, db bun.IDB, registrationID int64) ([]teamdb.TeamMember, error) {
	f.record("ListMembershipsByRegistration")
	if f.ListMembershipsByRegistrationFunc != nil {
		return f.ListMembershipsByRegistrationFunc(ctx, db, registrationID)
	}
	return nil, nil
}

func (f *FakeTeamRepository) Counts(ctx context.Context, db bun.IDB, teamID int64) (teamdb.TeamCounts, error) {
	f.record("Counts")
	if f.CountsFunc != nil {
		return f.CountsFunc(ctx, db, teamID)
	}
	return teamdb.TeamCounts{}, nil
}

var _ teamdb.Repository = (*FakeTeamRepository)(nil)

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
