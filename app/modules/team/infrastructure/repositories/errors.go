package teamdb

import "errors"

var (
	ErrNotFound        = errors.New("team not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrNameTaken       = errors.New("team name already exists for this event")
	ErrDuplicateMember = errors.New("registration is already a member of this team")
)
