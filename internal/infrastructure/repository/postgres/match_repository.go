package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	insertModel := matchInsertModel{
		TeamA:  item.TeamA,
		TeamB:  item.TeamB,
		GoalsA: item.GoalsA,
		GoalsB: item.GoalsB,
	}
	builder, err := qb.InsertModel("matches", insertModel)
	if err != nil {
		return match.Match{}, fmt.Errorf("build create match query: %w", err)
	}
	query, args, err := builder.Returning("id").ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build create match query: %w", err)
	}

	var id int64
	if err := conn(ctx, r.db).QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", r.mapPairViolation(err, item))
	}

	item.ID = id
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("team_a", item.TeamA).
		Set("team_b", item.TeamB).
		Set("goals_a", item.GoalsA).
		Set("goals_b", item.GoalsB).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", r.mapPairViolation(err, item))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match: %w: id=%d", tournament.ErrMatchNotFound, item.ID)
	}

	return nil
}

// DeleteAll truncates matches and restarts id assignment.
func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, "TRUNCATE TABLE matches RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncate matches: %w", err)
	}

	return nil
}

func (r *MatchRepository) mapPairViolation(err error, item match.Match) error {
	return mapUniqueViolation(err, matchesPairUniqueIndex, tournament.ErrDuplicateMatch, item.TeamA+" vs "+item.TeamB)
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:     row.ID,
		TeamA:  row.TeamA,
		TeamB:  row.TeamB,
		GoalsA: row.GoalsA,
		GoalsB: row.GoalsB,
	}
}
