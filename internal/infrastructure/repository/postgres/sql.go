package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode = pq.ErrorCode("23505")

	teamsNameUniqueConstraint = "teams_name_key"
	matchesPairUniqueIndex    = "matches_pair_uidx"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func uniqueViolationConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if pqErr.Code != uniqueViolationCode {
		return "", false
	}
	return pqErr.Constraint, true
}

// mapUniqueViolation turns a unique violation on a known constraint into the
// matching refusal so callers see the same error the in-memory store raises.
func mapUniqueViolation(err error, constraint string, refusal error, detail string) error {
	name, ok := uniqueViolationConstraint(err)
	if !ok || name != constraint {
		return err
	}
	return fmt.Errorf("%w: %s", refusal, detail)
}
