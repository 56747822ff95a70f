package eligibilityservice

import (
	"context"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// EligibilityOperationResult is the result envelope for eligibility checks.
type EligibilityOperationResult = results.OperationResult

// Checker is the transaction-composable eligibility check. Sibling services
// call it inside their own transactions so the rule is re-evaluated against
// the same snapshot that the subsequent write commits with.
type Checker interface {
	// CheckWithin returns nil when registering registerNumber for event would
	// keep the one-per-type rule intact, ErrAlreadyRegisteredSameType or
	// ErrLeadConflict otherwise. excludeRegistrationID (0 = none) skips one
	// existing row to support edit flows.
	CheckWithin(ctx context.Context, db bun.IDB, registerNumber string, event *eventdb.Event, excludeRegistrationID int64) error
}

// Service is the standalone eligibility contract offered to the web layer.
type Service interface {
	Checker
	ValidateEligibility(ctx context.Context, registerNumber string, event *eventdb.Event, excludeRegistrationID int64) (EligibilityOperationResult, error)
}
