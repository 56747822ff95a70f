package reconcileservice

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
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

// FakeTeamRepository stubs the membership lookups the sweeper needs.
type FakeTeamRepository struct {
	trace []string

	RemoveMemberFunc                  func(ctx context.Context, db bun.IDB, memberID int64) error
	ListMembershipsByRegistrationFunc func(ctx context.Context, db bun.IDB, registrationID int64) ([]teamdb.TeamMember, error)
}

func NewFakeTeamRepository() *FakeTeamRepository {
	return &FakeTeamRepository{trace: []string{}}
}

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
	return nil
}

func (f *FakeTeamRepository) UpdateTeam(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("UpdateTeam")
	return nil
}

func (f *FakeTeamRepository) DeleteTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	f.record("DeleteTeam")
	return nil
}

func (f *FakeTeamRepository) GetTeamByID(ctx context.Context, db bun.IDB, teamID int64) (*teamdb.Team, error) {
	f.record("GetTeamByID")
	return nil, teamdb.ErrNotFound
}

func (f *FakeTeamRepository) GetTeamByNameAndEvent(ctx context.Context, db bun.IDB, name string, eventID int64) (*teamdb.Team, error) {
	f.record("GetTeamByNameAndEvent")
	return nil, teamdb.ErrNotFound
}

func (f *FakeTeamRepository) AddMember(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error {
	f.record("AddMember")
	return nil
}

func (f *FakeTeamRepository) UpdateMember(ctx context.Context, db bun.IDB, member *teamdb.TeamMember) error {
	f.record("UpdateMember")
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
	return nil, teamdb.ErrMemberNotFound
}

func (f *FakeTeamRepository) GetMemberByID(ctx context.Context, db bun.IDB, memberID int64) (*teamdb.TeamMember, error) {
	f.record("GetMemberByID")
	return nil, teamdb.ErrMemberNotFound
}

func (f *FakeTeamRepository) ListMembers(ctx context.Context, db bun.IDB, teamID int64) ([]teamdb.TeamMember, error) {
	f.record("ListMembers")
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
	return teamdb.TeamCounts{}, nil
}

var _ teamdb.Repository = (*FakeTeamRepository)(nil)

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
