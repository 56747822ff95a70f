package teamservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// TeamFinalizedPayload is the success payload for FinalizeTeam.
type TeamFinalizedPayload struct {
	TeamID      int64             `json:"team_id"`
	TeamName    string            `json:"team_name"`
	Counts      teamdb.TeamCounts `json:"counts"`
	MinTeamSize int               `json:"min_team_size"`
	MaxTeamSize int               `json:"max_team_size"`
}

// FinalizeTeam checks the team against its event's size bounds: joined
// members against min_team_size and total members against max_team_size.
// The gate is advisory and persists nothing; membership can still change
// afterwards and the check can be run again.
func (s *TeamService) FinalizeTeam(ctx context.Context, teamID int64) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "finalize_team", teamID, func(ctx context.Context) (results.OperationResult, error) {
		var payload *TeamFinalizedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			team, err := s.teams.GetTeamByID(ctx, tx, teamID)
			if err != nil {
				return err
			}
			if team.Event == nil {
				return fmt.Errorf("team %d has no event loaded", team.ID)
			}

			counts, err := s.teams.Counts(ctx, tx, team.ID)
			if err != nil {
				return err
			}
			if counts.Joined < team.Event.MinTeamSize {
				return fmt.Errorf("team %q has %d joined of %d required: %w",
					team.Name, counts.Joined, team.Event.MinTeamSize, ErrBelowMinimum)
			}
			if counts.Total > team.Event.MaxTeamSize {
				return fmt.Errorf("team %q has %d members over the limit of %d: %w",
					team.Name, counts.Total, team.Event.MaxTeamSize, ErrAboveMaximum)
			}

			payload = &TeamFinalizedPayload{
				TeamID:      team.ID,
				TeamName:    team.Name,
				Counts:      counts,
				MinTeamSize: team.Event.MinTeamSize,
				MaxTeamSize: team.Event.MaxTeamSize,
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
