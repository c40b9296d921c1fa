package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/group-stage/internal/domain/tournament"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyRefusal tags an engine refusal with the usecase error class while
// keeping the original sentinel reachable through errors.Is.
func classifyRefusal(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, tournament.ErrTeamExists), errors.Is(err, tournament.ErrDuplicateMatch):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, tournament.ErrTeamNotFound), errors.Is(err, tournament.ErrMatchNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}

func isRefusal(err error) bool {
	for _, target := range []error{
		tournament.ErrTeamExists,
		tournament.ErrTeamNotFound,
		tournament.ErrMatchNotFound,
		tournament.ErrDuplicateMatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
