package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	qb "github.com/riskibarqy/group-stage/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by name query: %w", err)
	}

	var row teamTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by name: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		Name:              item.Name,
		RegistrationDay:   item.RegistrationDate.Day,
		RegistrationMonth: item.RegistrationDate.Month,
		GroupNumber:       item.Group,
	}
	builder, err := qb.InsertModel("teams", insertModel)
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create team: %w", mapUniqueViolation(err, teamsNameUniqueConstraint, tournament.ErrTeamExists, item.Name))
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, oldName string, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("registration_day", item.RegistrationDate.Day).
		Set("registration_month", item.RegistrationDate.Month).
		Set("group_number", item.Group).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("name", oldName)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", mapUniqueViolation(err, teamsNameUniqueConstraint, tournament.ErrTeamExists, item.Name))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team: %w: %s", tournament.ErrTeamNotFound, oldName)
	}

	return nil
}

func (r *TeamRepository) DeleteAll(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("teams").All().ToSQL()
	if err != nil {
		return fmt.Errorf("build delete teams query: %w", err)
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}

	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		Name: row.Name,
		RegistrationDate: team.RegistrationDate{
			Day:   row.RegistrationDay,
			Month: row.RegistrationMonth,
		},
		Group: row.GroupNumber,
	}
}
