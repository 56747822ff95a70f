package eligibilityservice

import "errors"

var (
	// ErrAlreadyRegisteredSameType means the register number already holds a
	// registration of the candidate event's type.
	ErrAlreadyRegisteredSameType = errors.New("already registered for an event of this type")
	// ErrLeadConflict means the register number leads a team for an event of
	// the candidate event's type.
	ErrLeadConflict = errors.New("already team lead of an event of this type")
)
