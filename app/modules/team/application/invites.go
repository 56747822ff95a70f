package teamservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// InviteAcceptedPayload is the success payload for AcceptInvite.
// AlreadyMember is set when the member had joined earlier and the call was
// a no-op.
type InviteAcceptedPayload struct {
	Member        *teamdb.TeamMember `json:"member"`
	TeamName      string             `json:"team_name"`
	AlreadyMember bool               `json:"already_member"`
}

// InviteDeclinedPayload is the success payload for DeclineInvite.
type InviteDeclinedPayload struct {
	Member   *teamdb.TeamMember `json:"member"`
	TeamName string             `json:"team_name"`
}

// AcceptInvite moves a pending membership to joined and stamps joined_at.
// Accepting twice is a no-op; a declined invite cannot be accepted.
func (s *TeamService) AcceptInvite(ctx context.Context, teamID, registrationID int64) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "accept_team_invite", teamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *InviteAcceptedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, teamID)
			if err != nil {
				return err
			}
			member, err := s.teams.GetMember(ctx, tx, team.ID, registrationID)
			if err != nil {
				return err
			}

			switch member.Status {
			case teamdb.MemberStatusJoined:
				payload = &InviteAcceptedPayload{Member: member, TeamName: team.Name, AlreadyMember: true}
				return nil
			case teamdb.MemberStatusDeclined:
				return fmt.Errorf("invitation to team %q was declined: %w", team.Name, ErrNotPending)
			}

			now := time.Now().UTC()
			member.Status = teamdb.MemberStatusJoined
			member.JoinedAt = &now
			if err := s.teams.UpdateMember(ctx, tx, member); err != nil {
				return err
			}

			payload = &InviteAcceptedPayload{Member: member, TeamName: team.Name}
			return nil
		})
		if err != nil {
			if isBusinessRejection(err) {
				return results.FailureResult(&TeamOperationFailedPayload{TeamID: teamID, Reason: err.Error()}, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(payload), nil
	})
}

// DeclineInvite moves a pending membership to declined and clears the team
// linkage from the member's registration. Only pending invites can be
// declined.
func (s *TeamService) DeclineInvite(ctx context.Context, teamID, registrationID int64) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "decline_team_invite", teamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *InviteDeclinedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, teamID)
			if err != nil {
				return err
			}
			member, err := s.teams.GetMember(ctx, tx, team.ID, registrationID)
			if err != nil {
				return err
			}
			if member.Status != teamdb.MemberStatusPending {
				return fmt.Errorf("invitation to team %q is %s: %w", team.Name, member.Status, ErrNotPending)
			}

			member.Status = teamdb.MemberStatusDeclined
			if err := s.teams.UpdateMember(ctx, tx, member); err != nil {
				return err
			}

			reg, err := s.registrations.GetByID(ctx, tx, registrationID)
			if err != nil {
				return err
			}
			clearTeamFields(reg)
			if err := s.registrations.Update(ctx, tx, reg); err != nil {
				return err
			}

			payload = &InviteDeclinedPayload{Member: member, TeamName: team.Name}
			return nil
		})
		if err != nil {
			if isBusinessRejection(err) {
				return results.FailureResult(&TeamOperationFailedPayload{TeamID: teamID, Reason: err.Error()}, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(payload), nil
	})
}
