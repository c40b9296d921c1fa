package main

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/group-stage/external/tournamentapi"
	"github.com/valyala/bytebufferpool"
)

// renderTable pads every column to its widest cell.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				_, _ = buf.WriteString("  ")
			}
			_, _ = buf.WriteString(cell)
			if i < len(cells)-1 {
				_, _ = buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		_ = buf.WriteByte('\n')
	}

	writeRow(header)
	rule := make([]string, len(header))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}
	return buf.String()
}

func renderTeams(teams []tournamentapi.Team) string {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{t.Name, t.Date, strconv.Itoa(t.Group)})
	}
	return renderTable([]string{"TEAM", "REGISTERED", "GROUP"}, rows)
}

func renderMatches(matches []tournamentapi.Match) string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.TeamA,
			strconv.Itoa(m.GoalsA) + "-" + strconv.Itoa(m.GoalsB),
			m.TeamB,
		})
	}
	return renderTable([]string{"ID", "TEAM A", "SCORE", "TEAM B"}, rows)
}

func renderTeamDetails(details tournamentapi.TeamDetails) string {
	out := renderTeams([]tournamentapi.Team{details.Team})
	if len(details.Matches) == 0 {
		return out + "\nno matches played\n"
	}
	return out + "\n" + renderMatches(details.Matches)
}

func renderStandings(standings []tournamentapi.GroupStanding) string {
	var sections []string
	for _, group := range standings {
		rows := make([][]string, 0, len(group.Entries))
		for _, e := range group.Entries {
			qualified := ""
			if e.Qualified {
				qualified = "Q"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.Position),
				e.Team,
				strconv.Itoa(e.TotalPoints),
				strconv.Itoa(e.TotalGoals),
				strconv.Itoa(e.AlternatePoints),
				e.Date,
				qualified,
			})
		}
		sections = append(sections, "Group "+strconv.Itoa(group.Group)+"\n"+
			renderTable([]string{"POS", "TEAM", "PTS", "GOALS", "ALT", "REGISTERED", ""}, rows))
	}
	if len(sections) == 0 {
		return "no teams registered\n"
	}
	return strings.Join(sections, "\n")
}

func renderLogs(entries []tournamentapi.LogEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp.UTC().Format(time.RFC3339), e.Message})
	}
	return renderTable([]string{"TIME", "MESSAGE"}, rows)
}

func renderImportReport(report importReport) string {
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{r.Kind, r.Label, r.Status, r.Detail})
	}
	return renderTable([]string{"KIND", "ROW", "STATUS", "DETAIL"}, rows)
}
