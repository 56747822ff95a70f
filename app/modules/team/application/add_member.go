package teamservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// MemberDetails carries the participant fields for a team member. Empty
// fields fall back to placeholders on create and mean "unchanged" on edit.
type MemberDetails struct {
	RegisterNumber string `json:"register_number"`
	FullName       string `json:"full_name,omitempty"`
	Email          string `json:"email,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Department     string `json:"department,omitempty"`
	Year           string `json:"year,omitempty"`
}

// AddMemberInput describes an invite request.
type AddMemberInput struct {
	TeamID  int64         `json:"team_id"`
	Details MemberDetails `json:"details"`
}

// MemberAddedPayload is the success payload for AddMember.
type MemberAddedPayload struct {
	Member         *teamdb.TeamMember           `json:"member"`
	Registration   *registrationdb.Registration `json:"registration"`
	Counts         teamdb.TeamCounts            `json:"counts"`
	RemainingSlots int                          `json:"remaining_slots"`
}

// AddMemberWithin invites a register number into the team as a pending
// member, inside the caller's transaction. The member's registration for
// the team's event is created on demand. All rule checks run before the
// first write so a rejection leaves the transaction usable.
func (s *TeamService) AddMemberWithin(ctx context.Context, tx bun.IDB, team *teamdb.Team, details MemberDetails) (*teamdb.TeamMember, *registrationdb.Registration, teamdb.TeamCounts, error) {
	if team.Event == nil {
		return nil, nil, teamdb.TeamCounts{}, fmt.Errorf("team %d has no event loaded", team.ID)
	}

	counts, err := s.teams.Counts(ctx, tx, team.ID)
	if err != nil {
		return nil, nil, teamdb.TeamCounts{}, err
	}
	if counts.Total >= team.Event.MaxTeamSize {
		return nil, nil, counts, fmt.Errorf("team %q already has %d of %d members: %w",
			team.Name, counts.Total, team.Event.MaxTeamSize, ErrTeamFull)
	}

	normalized := registrationdb.NormalizeRegisterNumber(details.RegisterNumber)
	if err := s.registrations.AcquireSubmissionLock(ctx, tx, normalized); err != nil {
		return nil, nil, counts, err
	}

	reg, err := s.registrations.GetByNumberAndEvent(ctx, tx, normalized, team.EventID)
	switch {
	case err == nil:
		if reg.TeamID != nil && *reg.TeamID != team.ID {
			return nil, reg, counts, fmt.Errorf("register number %q is in team %q: %w",
				normalized, reg.TeamName, ErrAlreadyInAnotherTeam)
		}
		if _, err := s.teams.GetMember(ctx, tx, team.ID, reg.ID); err == nil {
			return nil, reg, counts, teamdb.ErrDuplicateMember
		} else if !errors.Is(err, teamdb.ErrMemberNotFound) {
			return nil, reg, counts, err
		}
		if err := s.eligibility.CheckWithin(ctx, tx, normalized, team.Event, reg.ID); err != nil {
			return nil, reg, counts, err
		}
		applyMemberDetails(reg, details)
		stampTeamFields(reg, team, false, 0)
		if err := s.registrations.Update(ctx, tx, reg); err != nil {
			return nil, reg, counts, err
		}
	case errors.Is(err, registrationdb.ErrNotFound):
		if err := s.eligibility.CheckWithin(ctx, tx, normalized, team.Event, 0); err != nil {
			return nil, nil, counts, err
		}
		reg = newMemberRegistration(normalized, team.EventID, details)
		stampTeamFields(reg, team, false, 0)
		if err := s.registrations.Create(ctx, tx, reg); err != nil {
			return nil, nil, counts, err
		}
	default:
		return nil, nil, counts, err
	}

	member := &teamdb.TeamMember{
		TeamID:         team.ID,
		RegistrationID: reg.ID,
		Status:         teamdb.MemberStatusPending,
	}
	if err := s.teams.AddMember(ctx, tx, member); err != nil {
		return nil, reg, counts, err
	}

	counts, err = s.refreshLeadMemberCount(ctx, tx, team)
	if err != nil {
		return member, reg, counts, err
	}
	return member, reg, counts, nil
}

// AddMember invites a member in its own transaction.
func (s *TeamService) AddMember(ctx context.Context, input AddMemberInput) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "add_team_member", input.TeamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *MemberAddedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, input.TeamID)
			if err != nil {
				return err
			}
			member, reg, counts, err := s.AddMemberWithin(ctx, tx, team, input.Details)
			if err != nil {
				return err
			}
			payload = &MemberAddedPayload{
				Member:         member,
				Registration:   reg,
				Counts:         counts,
				RemainingSlots: team.Event.MaxTeamSize - counts.Total,
			}
			return nil
		})
		if err != nil {
			if isBusinessRejection(err) {
				return results.FailureResult(&TeamOperationFailedPayload{TeamID: input.TeamID, Reason: err.Error()}, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(payload), nil
	})
}

func applyMemberDetails(reg *registrationdb.Registration, details MemberDetails) {
	if v := strings.TrimSpace(details.FullName); v != "" {
		reg.FullName = v
	}
	if v := strings.TrimSpace(details.Email); v != "" {
		reg.Email = v
	}
	if v := strings.TrimSpace(details.PhoneNumber); v != "" {
		reg.PhoneNumber = v
	}
	if v := strings.TrimSpace(details.Department); v != "" {
		reg.Department = v
	}
	if v := strings.TrimSpace(details.Year); v != "" {
		reg.Year = v
	}
}

// newMemberRegistration builds a registration for a member the engine has
// not seen before. Missing fields get placeholders the member can correct
// later through EditMember.
func newMemberRegistration(registerNumber string, eventID int64, details MemberDetails) *registrationdb.Registration {
	reg := &registrationdb.Registration{
		RegisterNumber: registerNumber,
		EventID:        eventID,
		FullName:       "Team Member",
		Year:           "1",
		Department:     "CSE",
		Email:          fmt.Sprintf("%s@pending.local", strings.ToLower(registerNumber)),
	}
	applyMemberDetails(reg, details)
	return reg
}
