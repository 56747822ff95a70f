package registrationservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// RegistrationRetrievedPayload is the success payload for GetRegistration.
type RegistrationRetrievedPayload struct {
	Registration *registrationdb.Registration `json:"registration"`
}

// RegistrationDeletedPayload is the success payload for DeleteRegistration.
type RegistrationDeletedPayload struct {
	RegistrationID int64 `json:"registration_id"`
}

// GetRegistration looks up one registration by register number and event.
func (s *RegistrationService) GetRegistration(ctx context.Context, registerNumber string, eventID int64) (RegistrationOperationResult, error) {
	normalized := registrationdb.NormalizeRegisterNumber(registerNumber)
	return s.withTelemetry(ctx, "get_registration", normalized, func(ctx context.Context) (results.OperationResult, error) {
		var reg *registrationdb.Registration
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			var err error
			reg, err = s.registrations.GetByNumberAndEvent(ctx, tx, normalized, eventID)
			return err
		})
		if err != nil {
			if isSubmissionRejection(err) {
				return s.submissionFailure(normalized, eventID, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&RegistrationRetrievedPayload{Registration: reg}), nil
	})
}

// DeleteRegistration removes one registration. Team leads are refused
// until their team is deleted or transferred.
func (s *RegistrationService) DeleteRegistration(ctx context.Context, registrationID int64) (RegistrationOperationResult, error) {
	return s.withTelemetry(ctx, "delete_registration", fmt.Sprintf("id:%d", registrationID), func(ctx context.Context) (results.OperationResult, error) {
		var registerNumber string
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			reg, err := s.registrations.GetByID(ctx, tx, registrationID)
			if err != nil {
				return err
			}
			registerNumber = reg.RegisterNumber
			return s.registrations.Delete(ctx, tx, registrationID)
		})
		if err != nil {
			if isSubmissionRejection(err) {
				return s.submissionFailure(registerNumber, 0, err), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&RegistrationDeletedPayload{RegistrationID: registrationID}), nil
	})
}
