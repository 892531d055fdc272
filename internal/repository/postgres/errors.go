package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// ConstraintOrderSlot is the unique index keeping one active booking per
// (date, start_time) slot. The order repository maps violations of it to
// the duplicate-booking domain error.
const ConstraintOrderSlot = "orders_date_start_time_key"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. An empty constraint matches any unique violation; a named
// constraint must match exactly.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
