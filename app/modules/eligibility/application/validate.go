package eligibilityservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// EligibilityPassedPayload is the success payload for ValidateEligibility.
type EligibilityPassedPayload struct {
	RegisterNumber string `json:"register_number"`
	EventID        int64  `json:"event_id"`
}

// EligibilityFailedPayload is the failure payload for ValidateEligibility.
type EligibilityFailedPayload struct {
	RegisterNumber string            `json:"register_number"`
	EventType      eventdb.EventType `json:"event_type"`
	Reason         string            `json:"reason"`
}

// ValidateEligibility checks whether registerNumber may register for event.
// The same check runs again via CheckWithin inside the transaction that
// performs the write; this entry point exists for form-level validation.
func (s *EligibilityService) ValidateEligibility(ctx context.Context, registerNumber string, event *eventdb.Event, excludeRegistrationID int64) (EligibilityOperationResult, error) {
	normalized := registrationdb.NormalizeRegisterNumber(registerNumber)
	return s.withTelemetry(ctx, "validate_eligibility", normalized, func(ctx context.Context) (results.OperationResult, error) {
		var checkErr error
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			checkErr = s.CheckWithin(ctx, tx, normalized, event, excludeRegistrationID)
			if checkErr != nil && !isEligibilityRejection(checkErr) {
				return checkErr
			}
			return nil
		})
		if err != nil {
			return results.OperationResult{}, err
		}
		if checkErr != nil {
			return results.FailureResult(&EligibilityFailedPayload{
				RegisterNumber: normalized,
				EventType:      event.EventType,
				Reason:         checkErr.Error(),
			}, checkErr), nil
		}
		return results.SuccessResult(&EligibilityPassedPayload{
			RegisterNumber: normalized,
			EventID:        event.ID,
		}), nil
	})
}

// CheckWithin evaluates the one-per-type rule against the snapshot visible
// through db. Each register number may hold at most one technical and one
// non-technical registration, and leading an event of a type excludes any
// other row of that type.
func (s *EligibilityService) CheckWithin(ctx context.Context, db bun.IDB, registerNumber string, event *eventdb.Event, excludeRegistrationID int64) error {
	normalized := registrationdb.NormalizeRegisterNumber(registerNumber)

	existing, err := s.registrations.ListByNumber(ctx, db, normalized, excludeRegistrationID)
	if err != nil {
		return fmt.Errorf("failed to list registrations for %s: %w", normalized, err)
	}

	sameTypeCount := 0
	sameTypeLead := false
	for _, reg := range existing {
		if reg.Event == nil || reg.Event.EventType != event.EventType {
			continue
		}
		sameTypeCount++
		if reg.IsTeamLead {
			sameTypeLead = true
		}
	}

	if sameTypeCount >= 1 {
		return fmt.Errorf(
			"register number %q is already registered for one %s event: %w",
			normalized, event.EventType, ErrAlreadyRegisteredSameType,
		)
	}
	if sameTypeLead {
		return fmt.Errorf(
			"register number %q is already team lead of a %s event: %w",
			normalized, event.EventType, ErrLeadConflict,
		)
	}
	return nil
}

func isEligibilityRejection(err error) bool {
	return errors.Is(err, ErrAlreadyRegisteredSameType) || errors.Is(err, ErrLeadConflict)
}
