package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/group-stage/external/tournamentapi"
)

type importRow struct {
	Kind   string
	Index  int
	Label  string
	Status string
	Detail string
}

type importReport struct {
	Rows []importRow
}

func (r importReport) failed() int {
	count := 0
	for _, row := range r.Rows {
		if row.Status != "ok" {
			count++
		}
	}
	return count
}

// importTournament registers every team before any match so match validation
// sees the full registry.
func importTournament(ctx context.Context, client tournamentClient, payload tournamentapi.ComputeRequest, workers int) (importReport, error) {
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return importReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	teamTasks := make([]func() importRow, 0, len(payload.Teams))
	for i, req := range payload.Teams {
		teamTasks = append(teamTasks, func() importRow {
			row := importRow{Kind: "team", Index: i, Label: req.Name, Status: "ok"}
			if _, err := client.RegisterTeam(ctx, req); err != nil {
				row.Status, row.Detail = "failed", err.Error()
			}
			return row
		})
	}
	teamRows, err := runImportTasks(pool, teamTasks)
	if err != nil {
		return importReport{}, err
	}

	matchTasks := make([]func() importRow, 0, len(payload.Matches))
	for i, req := range payload.Matches {
		matchTasks = append(matchTasks, func() importRow {
			row := importRow{
				Kind:   "match",
				Index:  i,
				Label:  fmt.Sprintf("%s %d-%d %s", req.TeamA, req.GoalsA, req.GoalsB, req.TeamB),
				Status: "ok",
			}
			if created, err := client.AddMatch(ctx, req); err != nil {
				row.Status, row.Detail = "failed", err.Error()
			} else {
				row.Detail = fmt.Sprintf("id %d", created.ID)
			}
			return row
		})
	}
	matchRows, err := runImportTasks(pool, matchTasks)
	if err != nil {
		return importReport{}, err
	}

	return importReport{Rows: append(teamRows, matchRows...)}, nil
}

func runImportTasks(pool *ants.Pool, tasks []func() importRow) ([]importRow, error) {
	results := make(chan importRow, len(tasks))

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- task()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	rows := make([]importRow, 0, len(tasks))
	for row := range results {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows, nil
}
