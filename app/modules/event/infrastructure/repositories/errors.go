package eventdb

import "errors"

var (
	ErrNotFound  = errors.New("event not found")
	ErrSlugTaken = errors.New("event slug already in use")
)
