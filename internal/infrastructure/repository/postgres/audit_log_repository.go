package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type AuditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry auditlog.Entry) error {
	builder, err := qb.InsertModel("tournament_logs", auditLogInsertModel{
		Message:   entry.Message,
		CreatedAt: entry.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("build create log entry query: %w", err)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build create log entry query: %w", err)
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create log entry: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) ListLatest(ctx context.Context) ([]auditlog.Entry, error) {
	query, args, err := qb.Select(auditLogColumns...).From("tournament_logs").
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list log entries query: %w", err)
	}

	var rows []auditLogTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	out := make([]auditlog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, auditlog.Entry{
			Message:   row.Message,
			Timestamp: row.CreatedAt.UTC(),
		})
	}

	return out, nil
}
