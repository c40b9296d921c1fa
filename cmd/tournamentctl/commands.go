package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/group-stage/external/tournamentapi"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
)

var errUsage = errors.New("usage")

type tournamentClient interface {
	RegisterTeam(ctx context.Context, req tournamentapi.TeamRequest) (tournamentapi.Team, error)
	ListTeams(ctx context.Context) ([]tournamentapi.Team, error)
	GetTeam(ctx context.Context, name string) (tournamentapi.TeamDetails, error)
	EditTeam(ctx context.Context, oldName string, req tournamentapi.TeamRequest) (tournamentapi.Team, error)
	AddMatch(ctx context.Context, req tournamentapi.MatchRequest) (tournamentapi.Match, error)
	ListMatches(ctx context.Context) ([]tournamentapi.Match, error)
	GetMatch(ctx context.Context, id int64) (tournamentapi.Match, error)
	EditMatch(ctx context.Context, id int64, req tournamentapi.MatchRequest) (tournamentapi.Match, error)
	Standings(ctx context.Context) ([]tournamentapi.GroupStanding, error)
	GroupStanding(ctx context.Context, group int) (tournamentapi.GroupStanding, error)
	ComputeStandings(ctx context.Context, req tournamentapi.ComputeRequest) ([]tournamentapi.GroupStanding, error)
	ListLogs(ctx context.Context) ([]tournamentapi.LogEntry, error)
	ClearAll(ctx context.Context) error
}

type cli struct {
	client  tournamentClient
	out     io.Writer
	workers int
	logger  *logging.Logger
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "teams":
		return c.runTeams(ctx, args[1:])
	case "matches":
		return c.runMatches(ctx, args[1:])
	case "rankings":
		return c.runRankings(ctx, args[1:])
	case "logs":
		logs, err := c.client.ListLogs(ctx)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderLogs(logs))
	case "clear":
		if err := c.client.ClearAll(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(c.out, "all teams and matches cleared")
		return err
	case "import":
		if len(args) != 2 {
			return errUsage
		}
		payload, err := readPayload(args[1])
		if err != nil {
			return err
		}
		report, err := importTournament(ctx, c.client, payload, c.workers)
		if err != nil {
			return err
		}
		if err := writeOut(c.out, renderImportReport(report)); err != nil {
			return err
		}
		if report.failed() > 0 {
			for _, row := range report.Rows {
				if row.Status != "ok" {
					c.logger.Warn("import row rejected", "kind", row.Kind, "row", row.Label, "error", row.Detail)
				}
			}
			return fmt.Errorf("%d of %d rows failed", report.failed(), len(report.Rows))
		}
		return nil
	default:
		return errUsage
	}
}

func (c *cli) runTeams(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "add":
		if len(args) != 4 {
			return errUsage
		}
		req, err := teamRequestFromArgs(args[1:])
		if err != nil {
			return err
		}
		team, err := c.client.RegisterTeam(ctx, req)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderTeams([]tournamentapi.Team{team}))
	case "list":
		teams, err := c.client.ListTeams(ctx)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderTeams(teams))
	case "get":
		if len(args) != 2 {
			return errUsage
		}
		details, err := c.client.GetTeam(ctx, args[1])
		if err != nil {
			return err
		}
		return writeOut(c.out, renderTeamDetails(details))
	case "edit":
		if len(args) != 5 {
			return errUsage
		}
		req, err := teamRequestFromArgs(args[2:])
		if err != nil {
			return err
		}
		team, err := c.client.EditTeam(ctx, args[1], req)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderTeams([]tournamentapi.Team{team}))
	default:
		return errUsage
	}
}

func (c *cli) runMatches(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "add":
		if len(args) != 5 {
			return errUsage
		}
		req, err := matchRequestFromArgs(args[1:])
		if err != nil {
			return err
		}
		match, err := c.client.AddMatch(ctx, req)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderMatches([]tournamentapi.Match{match}))
	case "list":
		matches, err := c.client.ListMatches(ctx)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderMatches(matches))
	case "get":
		if len(args) != 2 {
			return errUsage
		}
		id, err := parseMatchID(args[1])
		if err != nil {
			return err
		}
		match, err := c.client.GetMatch(ctx, id)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderMatches([]tournamentapi.Match{match}))
	case "edit":
		if len(args) != 6 {
			return errUsage
		}
		id, err := parseMatchID(args[1])
		if err != nil {
			return err
		}
		req, err := matchRequestFromArgs(args[2:])
		if err != nil {
			return err
		}
		match, err := c.client.EditMatch(ctx, id, req)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderMatches([]tournamentapi.Match{match}))
	default:
		return errUsage
	}
}

func (c *cli) runRankings(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		standings, err := c.client.Standings(ctx)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderStandings(standings))
	case len(args) == 2 && args[0] == "compute":
		payload, err := readPayload(args[1])
		if err != nil {
			return err
		}
		standings, err := c.client.ComputeStandings(ctx, payload)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderStandings(standings))
	case len(args) == 1:
		group, err := strconv.Atoi(args[0])
		if err != nil || group <= 0 {
			return fmt.Errorf("group must be a positive integer, got %q", args[0])
		}
		standing, err := c.client.GroupStanding(ctx, group)
		if err != nil {
			return err
		}
		return writeOut(c.out, renderStandings([]tournamentapi.GroupStanding{standing}))
	default:
		return errUsage
	}
}

func teamRequestFromArgs(args []string) (tournamentapi.TeamRequest, error) {
	group, err := strconv.Atoi(args[2])
	if err != nil || group <= 0 {
		return tournamentapi.TeamRequest{}, fmt.Errorf("group must be a positive integer, got %q", args[2])
	}
	return tournamentapi.TeamRequest{Name: args[0], Date: args[1], Group: group}, nil
}

func matchRequestFromArgs(args []string) (tournamentapi.MatchRequest, error) {
	goalsA, err := strconv.Atoi(args[2])
	if err != nil {
		return tournamentapi.MatchRequest{}, fmt.Errorf("goals must be an integer, got %q", args[2])
	}
	goalsB, err := strconv.Atoi(args[3])
	if err != nil {
		return tournamentapi.MatchRequest{}, fmt.Errorf("goals must be an integer, got %q", args[3])
	}
	return tournamentapi.MatchRequest{TeamA: args[0], TeamB: args[1], GoalsA: goalsA, GoalsB: goalsB}, nil
}

func parseMatchID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("match id must be a positive integer, got %q", raw)
	}
	return id, nil
}

// readPayload loads a {"teams": [...], "matches": [...]} document.
func readPayload(path string) (tournamentapi.ComputeRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tournamentapi.ComputeRequest{}, fmt.Errorf("read %s: %w", path, err)
	}
	var payload tournamentapi.ComputeRequest
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return tournamentapi.ComputeRequest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}

func writeOut(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}
