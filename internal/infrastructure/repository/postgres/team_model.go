package postgres

import (
	"time"

	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID                int64     `db:"id"`
	Name              string    `db:"name"`
	RegistrationDay   int       `db:"registration_day"`
	RegistrationMonth int       `db:"registration_month"`
	GroupNumber       int       `db:"group_number"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

var teamColumns = qb.MustColumns(teamTableModel{})

type teamInsertModel struct {
	Name              string `db:"name"`
	RegistrationDay   int    `db:"registration_day"`
	RegistrationMonth int    `db:"registration_month"`
	GroupNumber       int    `db:"group_number"`
}
