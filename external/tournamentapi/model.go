package tournamentapi

import "time"

type TeamRequest struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Group int    `json:"group"`
}

type MatchRequest struct {
	TeamA  string `json:"team_a"`
	TeamB  string `json:"team_b"`
	GoalsA int    `json:"goals_a"`
	GoalsB int    `json:"goals_b"`
}

// ComputeRequest is a full tournament ranked without touching server state.
type ComputeRequest struct {
	Teams   []TeamRequest  `json:"teams"`
	Matches []MatchRequest `json:"matches"`
}

type Team struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Group int    `json:"group"`
}

type Match struct {
	ID     int64  `json:"id"`
	TeamA  string `json:"team_a"`
	TeamB  string `json:"team_b"`
	GoalsA int    `json:"goals_a"`
	GoalsB int    `json:"goals_b"`
}

type TeamDetails struct {
	Team    Team    `json:"team"`
	Matches []Match `json:"matches"`
}

type StandingEntry struct {
	Position        int    `json:"position"`
	Team            string `json:"team"`
	TotalPoints     int    `json:"total_points"`
	TotalGoals      int    `json:"total_goals"`
	AlternatePoints int    `json:"alternate_points"`
	Date            string `json:"date"`
	Qualified       bool   `json:"qualified"`
}

type GroupStanding struct {
	Group   int             `json:"group"`
	Entries []StandingEntry `json:"entries"`
}

type LogEntry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type envelope[T any] struct {
	APIVersion string        `json:"apiVersion"`
	Data       T             `json:"data"`
	Error      *apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Errors  []struct {
		Reason string `json:"reason"`
	} `json:"errors"`
}
