package postgres

import (
	"time"

	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type auditLogTableModel struct {
	ID        int64     `db:"id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

var auditLogColumns = qb.MustColumns(auditLogTableModel{})

type auditLogInsertModel struct {
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
