package registrationservice

import "errors"

var (
	// ErrIdentityConflict means the register number is already claimed by an
	// identity whose password does not match the one submitted.
	ErrIdentityConflict = errors.New("register number is claimed by another identity")
	// ErrInvalidSubmission means the submission payload failed field
	// validation before any rule ran.
	ErrInvalidSubmission = errors.New("invalid submission")
)
