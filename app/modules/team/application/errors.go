package teamservice

import "errors"

var (
	// ErrNotTeamEvent means the target event does not support teams.
	ErrNotTeamEvent = errors.New("event does not support teams")
	// ErrTeamFull means the team already holds max_team_size members,
	// counting every status.
	ErrTeamFull = errors.New("team is full")
	// ErrCannotRemoveLead protects the founding registration's membership.
	ErrCannotRemoveLead = errors.New("cannot remove team leader")
	// ErrNotPending means an invite transition was attempted from a state
	// other than pending.
	ErrNotPending = errors.New("invitation is not pending")
	// ErrBelowMinimum means the team has fewer joined members than
	// min_team_size.
	ErrBelowMinimum = errors.New("team is below the minimum size")
	// ErrAboveMaximum means the team holds more members than max_team_size.
	ErrAboveMaximum = errors.New("team exceeds the maximum size")
	// ErrAlreadyInAnotherTeam means the registration is linked to a
	// different team for the same event.
	ErrAlreadyInAnotherTeam = errors.New("registration already belongs to another team")
	// ErrTeamEventMismatch means the founder's registration is for a
	// different event than the team.
	ErrTeamEventMismatch = errors.New("registration is not for this team's event")
)
