package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
)

func TestMapUniqueViolation(t *testing.T) {
	t.Run("maps known constraint", func(t *testing.T) {
		err := fmt.Errorf("insert team: %w", &pq.Error{Code: "23505", Constraint: teamsNameUniqueConstraint})
		got := mapUniqueViolation(err, teamsNameUniqueConstraint, tournament.ErrTeamExists, "Alpha")
		if !errors.Is(got, tournament.ErrTeamExists) {
			t.Fatalf("expected ErrTeamExists, got %v", got)
		}
	})

	t.Run("ignores other constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "other_key"}
		got := mapUniqueViolation(err, matchesPairUniqueIndex, tournament.ErrDuplicateMatch, "Alpha vs Beta")
		if errors.Is(got, tournament.ErrDuplicateMatch) {
			t.Fatalf("unexpected refusal for unrelated constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Constraint: matchesPairUniqueIndex}
		got := mapUniqueViolation(err, matchesPairUniqueIndex, tournament.ErrDuplicateMatch, "Alpha vs Beta")
		if errors.Is(got, tournament.ErrDuplicateMatch) {
			t.Fatalf("unexpected refusal for foreign key error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected arbitrary error to be found")
	}
}

func TestTeamFromRow(t *testing.T) {
	got := teamFromRow(teamTableModel{Name: "Alpha", RegistrationDay: 31, RegistrationMonth: 2, GroupNumber: 4})
	if got.Name != "Alpha" || got.RegistrationDate.String() != "31/02" || got.Group != 4 {
		t.Fatalf("unexpected team: %+v", got)
	}
}
