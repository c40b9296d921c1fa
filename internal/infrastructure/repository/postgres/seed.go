package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/group-stage/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo tournament into an empty database. It is a
// no-op once any team exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		row := teamInsertModel{
			Name:              t.Name,
			RegistrationDay:   t.RegistrationDate.Day,
			RegistrationMonth: t.RegistrationDate.Month,
			GroupNumber:       t.Group,
		}
		if err := execSeedInsert(ctx, tx, "teams", row, "name"); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		row := matchInsertModel{
			TeamA:  m.TeamA,
			TeamB:  m.TeamB,
			GoalsA: m.GoalsA,
			GoalsB: m.GoalsB,
		}
		if err := execSeedInsert(ctx, tx, "matches", row); err != nil {
			return fmt.Errorf("seed match %s vs %s: %w", m.TeamA, m.TeamB, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func execSeedInsert(ctx context.Context, tx *sqlx.Tx, table string, row any, conflictTarget ...string) error {
	builder, err := qb.InsertModel(table, row)
	if err != nil {
		return err
	}
	query, args, err := builder.OnConflictDoNothing(conflictTarget...).ToSQL()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
