package registrationservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// SubmitRegistrationInput is one complete submission. MembersJSON carries
// the raw members field for team events; it is ignored for solo events.
type SubmitRegistrationInput struct {
	RegisterNumber  string `json:"register_number"`
	FullName        string `json:"full_name"`
	Email           string `json:"email,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Department      string `json:"department"`
	Year            string `json:"year"`
	Password        string `json:"-"`
	EventID         int64  `json:"event_id"`
	TeamName        string `json:"team_name,omitempty"`
	TeamDescription string `json:"team_description,omitempty"`
	MembersJSON     string `json:"members_json,omitempty"`
}

// MemberOutcome records why one listed member was not invited.
type MemberOutcome struct {
	RegisterNumber string `json:"register_number"`
	Reason         string `json:"reason"`
}

// RegistrationSubmittedPayload is the success payload for
// SubmitRegistration. TeamPassword is the plaintext join secret, present
// only when a team was created.
type RegistrationSubmittedPayload struct {
	CorrelationID  string                       `json:"correlation_id"`
	Registration   *registrationdb.Registration `json:"registration"`
	Event          *eventdb.Event               `json:"event"`
	Team           *teamdb.Team                 `json:"team,omitempty"`
	TeamPassword   string                       `json:"team_password,omitempty"`
	MembersAdded   []string                     `json:"members_added,omitempty"`
	AlreadyInTeam  []string                     `json:"already_in_team,omitempty"`
	MembersSkipped []MemberOutcome              `json:"members_skipped,omitempty"`
	Message        string                       `json:"message"`
}

// RegistrationFailedPayload is the failure payload for SubmitRegistration.
type RegistrationFailedPayload struct {
	RegisterNumber string `json:"register_number"`
	EventID        int64  `json:"event_id"`
	Reason         string `json:"reason"`
}

// SubmitRegistration runs a full submission in one transaction: the
// duplicate and eligibility checks, the identity record, the registration
// row and, for team events with a team name, team creation plus member
// invites. Member-level problems never fail the submission; they land in
// the skipped list instead.
func (s *RegistrationService) SubmitRegistration(ctx context.Context, input SubmitRegistrationInput) (RegistrationOperationResult, error) {
	normalized := registrationdb.NormalizeRegisterNumber(input.RegisterNumber)
	return s.withTelemetry(ctx, "submit_registration", normalized, func(ctx context.Context) (results.OperationResult, error) {
		if normalized == "" {
			err := fmt.Errorf("register number is required: %w", ErrInvalidSubmission)
			return s.submissionFailure(normalized, input.EventID, err), nil
		}
		if strings.TrimSpace(input.FullName) == "" {
			err := fmt.Errorf("full name is required: %w", ErrInvalidSubmission)
			return s.submissionFailure(normalized, input.EventID, err), nil
		}

		members, memberProblems := ParseMemberPayload(input.MembersJSON)

		var payload *RegistrationSubmittedPayload
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			event, err := s.events.GetByID(ctx, tx, input.EventID)
			if err != nil {
				return err
			}

			if err := s.registrations.AcquireSubmissionLock(ctx, tx, normalized); err != nil {
				return err
			}

			if _, err := s.registrations.GetByNumberAndEvent(ctx, tx, normalized, event.ID); err == nil {
				return fmt.Errorf("register number %q already registered for %q: %w",
					normalized, event.Name, registrationdb.ErrDuplicateForEvent)
			} else if !errors.Is(err, registrationdb.ErrNotFound) {
				return err
			}

			if err := s.eligibility.CheckWithin(ctx, tx, normalized, event, 0); err != nil {
				return err
			}

			if err := s.ensureIdentity(ctx, tx, normalized, input.Email, input.Password); err != nil {
				return err
			}

			reg := &registrationdb.Registration{
				RegisterNumber: normalized,
				FullName:       strings.TrimSpace(input.FullName),
				Year:           MapYear(input.Year),
				Department:     MapDepartment(input.Department),
				PhoneNumber:    strings.TrimSpace(input.PhoneNumber),
				Email:          strings.TrimSpace(input.Email),
				EventID:        event.ID,
			}
			if err := s.registrations.Create(ctx, tx, reg); err != nil {
				return err
			}

			payload = &RegistrationSubmittedPayload{
				CorrelationID: uuid.NewString(),
				Registration:  reg,
				Event:         event,
			}

			if event.IsTeamEvent && strings.TrimSpace(input.TeamName) != "" {
				payload.MembersSkipped = append(payload.MembersSkipped, memberProblems...)
				if err := s.createTeamWithMembers(ctx, tx, payload, event, reg, input, members); err != nil {
					return err
				}
			}

			payload.Message = buildSuccessMessage(payload)
			return nil
		})
		if err != nil {
			if isSubmissionRejection(err) {
				return s.submissionFailure(normalized, input.EventID, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(payload), nil
	})
}

func (s *RegistrationService) submissionFailure(registerNumber string, eventID int64, err error) results.OperationResult {
	return results.FailureResult(&RegistrationFailedPayload{
		RegisterNumber: registerNumber,
		EventID:        eventID,
		Reason:         err.Error(),
	}, err)
}

// ensureIdentity gets or creates the credential record for the register
// number. An existing identity with a different password rejects the
// submission so one participant cannot hijack another's number.
func (s *RegistrationService) ensureIdentity(ctx context.Context, tx bun.IDB, registerNumber, email, password string) error {
	identity, err := s.identities.GetByNumber(ctx, tx, registerNumber)
	switch {
	case err == nil:
		if password != "" && identity.PasswordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
				return fmt.Errorf("register number %q: %w", registerNumber, ErrIdentityConflict)
			}
		}
		return nil
	case errors.Is(err, registrationdb.ErrIdentityNotFound):
		identity = &registrationdb.Identity{
			RegisterNumber: registerNumber,
			Email:          strings.TrimSpace(email),
		}
		if password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			identity.PasswordHash = string(hash)
		}
		return s.identities.Create(ctx, tx, identity)
	default:
		return err
	}
}

// createTeamWithMembers creates the team and invites each listed member,
// classifying per-member outcomes into added, already-in-team and skipped.
func (s *RegistrationService) createTeamWithMembers(
	ctx context.Context,
	tx bun.Tx,
	payload *RegistrationSubmittedPayload,
	event *eventdb.Event,
	founder *registrationdb.Registration,
	input SubmitRegistrationInput,
	members []teamservice.MemberDetails,
) error {
	team, password, err := s.teams.CreateTeamWithin(ctx, tx, event, founder, input.TeamName, input.TeamDescription)
	if err != nil {
		return err
	}
	payload.Team = team
	payload.TeamPassword = password

	for _, details := range members {
		memberNumber := registrationdb.NormalizeRegisterNumber(details.RegisterNumber)
		if memberNumber == founder.RegisterNumber {
			payload.MembersSkipped = append(payload.MembersSkipped, MemberOutcome{
				RegisterNumber: memberNumber,
				Reason:         "duplicate of team lead",
			})
			continue
		}
		_, _, _, err := s.teams.AddMemberWithin(ctx, tx, team, details)
		switch {
		case err == nil:
			payload.MembersAdded = append(payload.MembersAdded, memberNumber)
		case errors.Is(err, teamdb.ErrDuplicateMember) || errors.Is(err, teamservice.ErrAlreadyInAnotherTeam):
			payload.AlreadyInTeam = append(payload.AlreadyInTeam, memberNumber)
		case teamservice.IsBusinessRejection(err):
			payload.MembersSkipped = append(payload.MembersSkipped, MemberOutcome{
				RegisterNumber: memberNumber,
				Reason:         err.Error(),
			})
		default:
			return err
		}
	}
	return nil
}

func buildSuccessMessage(payload *RegistrationSubmittedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registration successful for %s!", payload.Event.Name)
	if payload.Team != nil {
		fmt.Fprintf(&b, " Team %q created.", payload.Team.Name)
		if n := len(payload.MembersAdded); n > 0 {
			fmt.Fprintf(&b, " Members invited: %d.", n)
		}
		if n := len(payload.AlreadyInTeam); n > 0 {
			fmt.Fprintf(&b, " Already in the team: %s.", strings.Join(payload.AlreadyInTeam, ", "))
		}
		if n := len(payload.MembersSkipped); n > 0 {
			fmt.Fprintf(&b, " Skipped: %d (see details).", n)
		}
	}
	return b.String()
}
