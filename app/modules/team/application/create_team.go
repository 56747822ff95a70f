package teamservice

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// CreateTeamInput describes a team creation request. The founder must
// already hold a registration for the event.
type CreateTeamInput struct {
	EventID               int64  `json:"event_id"`
	FounderRegistrationID int64  `json:"founder_registration_id"`
	Name                  string `json:"name"`
	Description           string `json:"description,omitempty"`
}

// TeamCreatedPayload is the success payload for CreateTeam. Password is
// the plaintext join secret; it is returned exactly once and only its
// hash is stored.
type TeamCreatedPayload struct {
	Team     *teamdb.Team      `json:"team"`
	Password string            `json:"password"`
	Counts   teamdb.TeamCounts `json:"counts"`
}

// CreateTeamWithin creates a team for event with founder as its joined
// lead, inside the caller's transaction. It returns the team and the
// plaintext join password. The founder's own registration is excluded from
// the eligibility re-check so holding a spot in the event does not block
// forming a team for it.
func (s *TeamService) CreateTeamWithin(ctx context.Context, tx bun.IDB, event *eventdb.Event, founder *registrationdb.Registration, name, description string) (*teamdb.Team, string, error) {
	if !event.IsTeamEvent {
		return nil, "", ErrNotTeamEvent
	}
	if founder.EventID != event.ID {
		return nil, "", ErrTeamEventMismatch
	}

	if err := s.eligibility.CheckWithin(ctx, tx, founder.RegisterNumber, event, founder.ID); err != nil {
		return nil, "", err
	}

	password, err := generateTeamPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := hashTeamPassword(password)
	if err != nil {
		return nil, "", err
	}

	team := &teamdb.Team{
		Name:        strings.TrimSpace(name),
		EventID:     event.ID,
		CreatedByID: founder.ID,
		Password:    hash,
		Description: description,
	}
	if err := s.teams.CreateTeam(ctx, tx, team); err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	member := &teamdb.TeamMember{
		TeamID:         team.ID,
		RegistrationID: founder.ID,
		Status:         teamdb.MemberStatusJoined,
		JoinedAt:       &now,
	}
	if err := s.teams.AddMember(ctx, tx, member); err != nil {
		return nil, "", err
	}

	stampTeamFields(founder, team, true, 1)
	if err := s.registrations.Update(ctx, tx, founder); err != nil {
		return nil, "", err
	}
	return team, password, nil
}

// CreateTeam creates a team in its own transaction.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (TeamOperationResult, error) {
	return s.withTelemetry(ctx, "create_team", 0, func(ctx context.Context) (results.OperationResult, error) {
		var payload *TeamCreatedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			founder, err := s.registrations.GetByID(ctx, tx, input.FounderRegistrationID)
			if err != nil {
				return err
			}
			event, err := s.events.GetByID(ctx, tx, input.EventID)
			if err != nil {
				return err
			}
			if err := s.registrations.AcquireSubmissionLock(ctx, tx, founder.RegisterNumber); err != nil {
				return err
			}

			team, password, err := s.CreateTeamWithin(ctx, tx, event, founder, input.Name, input.Description)
			if err != nil {
				return err
			}

			payload = &TeamCreatedPayload{
				Team:     team,
				Password: password,
				Counts:   teamdb.TeamCounts{Joined: 1, Total: 1},
			}
			return nil
		})
		if err != nil {
			if isBusinessRejection(err) {
				return results.FailureResult(&TeamOperationFailedPayload{Reason: err.Error()}, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(payload), nil
	})
}
