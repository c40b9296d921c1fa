package tournament

import "github.com/riskibarqy/group-stage/internal/domain/match"

// RenameCascade returns the rewritten copy of every match that still refers to
// oldName. Goals and IDs are kept. Apply the result before renaming the team
// itself, since the checks run against the current registry.
func RenameCascade(oldName, newName string, matches []match.Match) []match.Match {
	if oldName == newName {
		return nil
	}

	var out []match.Match
	for _, item := range matches {
		if !item.Involves(oldName) {
			continue
		}
		if item.TeamA == oldName {
			item.TeamA = newName
		}
		if item.TeamB == oldName {
			item.TeamB = newName
		}
		out = append(out, item)
	}

	return out
}
