// Package pgerr classifies Postgres driver errors so repositories can
// translate storage-level constraint violations into domain errors.
package pgerr

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolationCode
	}
	return false
}
