package match

import (
	"fmt"
	"strings"
)

// Match is a played fixture between two teams of the same group.
// ID is assigned by the repository on creation.
type Match struct {
	ID     int64
	TeamA  string
	TeamB  string
	GoalsA int
	GoalsB int
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.TeamA) == "" {
		return fmt.Errorf("match team a is required")
	}
	if strings.TrimSpace(m.TeamB) == "" {
		return fmt.Errorf("match team b is required")
	}
	if m.GoalsA < 0 || m.GoalsB < 0 {
		return fmt.Errorf("match goals must be >= 0")
	}

	return nil
}

// Involves reports whether the team played in this match.
func (m Match) Involves(name string) bool {
	return m.TeamA == name || m.TeamB == name
}

// SamePair reports whether the match is between a and b in either order.
func (m Match) SamePair(a, b string) bool {
	return (m.TeamA == a && m.TeamB == b) || (m.TeamA == b && m.TeamB == a)
}
