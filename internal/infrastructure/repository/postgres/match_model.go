package postgres

import (
	"time"

	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID        int64     `db:"id"`
	TeamA     string    `db:"team_a"`
	TeamB     string    `db:"team_b"`
	GoalsA    int       `db:"goals_a"`
	GoalsB    int       `db:"goals_b"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var matchColumns = qb.MustColumns(matchTableModel{})

type matchInsertModel struct {
	TeamA  string `db:"team_a"`
	TeamB  string `db:"team_b"`
	GoalsA int    `db:"goals_a"`
	GoalsB int    `db:"goals_b"`
}
