package registrationservice

import (
	"context"

	"github.com/artifa-fest/registration/internal/results"
)

// RegistrationOperationResult is the result envelope for submission
// operations.
type RegistrationOperationResult = results.OperationResult

// Service is the interface for the registration coordinator.
type Service interface {
	SubmitRegistration(ctx context.Context, input SubmitRegistrationInput) (RegistrationOperationResult, error)
	GetRegistration(ctx context.Context, registerNumber string, eventID int64) (RegistrationOperationResult, error)
	DeleteRegistration(ctx context.Context, registrationID int64) (RegistrationOperationResult, error)
}
