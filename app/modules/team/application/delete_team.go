package teamservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/results"
)

// TeamDeletedPayload is the success payload for DeleteTeam.
type TeamDeletedPayload struct {
	TeamID         int64  `json:"team_id"`
	TeamName       string `json:"team_name"`
	MembersRemoved int    `json:"members_removed"`
}

// DeleteTeam removes the team with all of its memberships and clears the
// team linkage from every affected registration, including the lead's.
// This is the only path that releases a lead from their team.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID int64) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "delete_team", teamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *TeamDeletedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, teamID)
			if err != nil {
				return err
			}
			members, err := s.teams.ListMembers(ctx, tx, team.ID)
			if err != nil {
				return err
			}

			for _, member := range members {
				reg, err := s.registrations.GetByID(ctx, tx, member.RegistrationID)
				if err != nil {
					return err
				}
				clearTeamFields(reg)
				if err := s.registrations.Update(ctx, tx, reg); err != nil {
					return err
				}
			}

			if err := s.teams.DeleteTeam(ctx, tx, team.ID); err != nil {
				return err
			}

			payload = &TeamDeletedPayload{
				TeamID:         team.ID,
				TeamName:       team.Name,
				MembersRemoved: len(members),
			}
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
