package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a storage-level unique-constraint
// failure. The constraints back the same invariants the pre-mutation checks
// guard, so a concurrent writer slipping between check and insert still
// surfaces as the same BadRequest outcome instead of a 500.
//
// The string match covers the sqlite driver used by the test fixtures.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
