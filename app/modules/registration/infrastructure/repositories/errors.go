package registrationdb

import "errors"

var (
	ErrNotFound          = errors.New("registration not found")
	ErrDuplicateForEvent = errors.New("register number already registered for this event")
	ErrLeadHasTeam       = errors.New("registration leads a team and cannot be deleted directly")
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrIdentityTaken     = errors.New("identity already exists for this register number")
)
