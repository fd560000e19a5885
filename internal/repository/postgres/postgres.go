package postgres

import (
	"errors"
	"strconv"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique constraint
// conflict. The swipe and match protocols depend on detecting it.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// itoa inlines integer limits into queries whose placeholder count varies.
func itoa(n int) string {
	return strconv.Itoa(n)
}
