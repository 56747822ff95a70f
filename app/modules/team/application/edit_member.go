package teamservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// EditMemberInput describes a member edit. Empty detail fields are left
// unchanged; a nil Status keeps the current one.
type EditMemberInput struct {
	TeamID   int64                `json:"team_id"`
	MemberID int64                `json:"member_id"`
	Details  MemberDetails        `json:"details"`
	Status   *teamdb.MemberStatus `json:"status,omitempty"`
}

// MemberEditedPayload is the success payload for EditMember.
type MemberEditedPayload struct {
	Member       *teamdb.TeamMember           `json:"member"`
	Registration *registrationdb.Registration `json:"registration"`
}

// EditMember updates a member's participant details and, optionally,
// overrides their invite status. Changing the register number re-runs the
// duplicate and eligibility checks with the member's own registration
// excluded.
func (s *TeamService) EditMember(ctx context.Context, input EditMemberInput) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "edit_team_member", input.TeamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *MemberEditedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, input.TeamID)
			if err != nil {
				return err
			}
			if team.Event == nil {
				return fmt.Errorf("team %d has no event loaded", team.ID)
			}

			member, err := s.teams.GetMemberByID(ctx, tx, input.MemberID)
			if err != nil {
				return err
			}
			if member.TeamID != team.ID {
				return teamdb.ErrMemberNotFound
			}

			reg, err := s.registrations.GetByID(ctx, tx, member.RegistrationID)
			if err != nil {
				return err
			}

			newNumber := registrationdb.NormalizeRegisterNumber(input.Details.RegisterNumber)
			if newNumber != "" && newNumber != reg.RegisterNumber {
				if err := s.registrations.AcquireSubmissionLock(ctx, tx, newNumber); err != nil {
					return err
				}
				if _, err := s.registrations.GetByNumberAndEvent(ctx, tx, newNumber, team.EventID); err == nil {
					return fmt.Errorf("register number %q already registered for this event: %w",
						newNumber, registrationdb.ErrDuplicateForEvent)
				} else if !isNotFound(err) {
					return err
				}
				if err := s.eligibility.CheckWithin(ctx, tx, newNumber, team.Event, reg.ID); err != nil {
					return err
				}
				reg.RegisterNumber = newNumber
			}

			applyMemberDetails(reg, input.Details)
			if err := s.registrations.Update(ctx, tx, reg); err != nil {
				return err
			}

			if input.Status != nil {
				if !input.Status.IsValid() {
					return fmt.Errorf("invalid member status %q", *input.Status)
				}
				if *input.Status == teamdb.MemberStatusJoined && member.Status != teamdb.MemberStatusJoined {
					now := time.Now().UTC()
					member.JoinedAt = &now
				}
				member.Status = *input.Status
				if err := s.teams.UpdateMember(ctx, tx, member); err != nil {
					return err
				}
			}

			payload = &MemberEditedPayload{Member: member, Registration: reg}
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
