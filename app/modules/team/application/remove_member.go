package teamservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// MemberRemovedPayload is the success payload for RemoveMember.
type MemberRemovedPayload struct {
	TeamID   int64             `json:"team_id"`
	MemberID int64             `json:"member_id"`
	Counts   teamdb.TeamCounts `json:"counts"`
}

// RemoveMember deletes a membership and clears the team linkage from the
// member's registration. The lead's membership cannot be removed; the team
// has to be deleted instead.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, memberID int64) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "remove_team_member", teamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *MemberRemovedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, teamID)
			if err != nil {
				return err
			}
			member, err := s.teams.GetMemberByID(ctx, tx, memberID)
			if err != nil {
				return err
			}
			if member.TeamID != team.ID {
				return teamdb.ErrMemberNotFound
			}
			if member.RegistrationID == team.CreatedByID {
				return fmt.Errorf("registration %d leads team %q: %w",
					member.RegistrationID, team.Name, ErrCannotRemoveLead)
			}

			if err := s.teams.RemoveMember(ctx, tx, member.ID); err != nil {
				return err
			}

			reg, err := s.registrations.GetByID(ctx, tx, member.RegistrationID)
			if err != nil {
				return err
			}
			clearTeamFields(reg)
			if err := s.registrations.Update(ctx, tx, reg); err != nil {
				return err
			}

			counts, err := s.refreshLeadMemberCount(ctx, tx, team)
			if err != nil {
				return err
			}

			payload = &MemberRemovedPayload{TeamID: team.ID, MemberID: member.ID, Counts: counts}
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
