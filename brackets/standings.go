package brackets

import (
	"sort"

	"github.com/matchcourt/academy-system/models"
)

// PointsPerWin is awarded per league win. There are no draws and a loss scores
// nothing.
const PointsPerWin = 2

// ComputeStandings builds the table for one pool from its matches. Only
// completed league matches with a winner count; a team that has not finished a
// match yet does not appear at all, because standings observe matches, not
// registrations. Ranking is points then wins, descending; ties keep the order
// teams were first seen in.
func ComputeStandings(matches []models.Match) []models.Standing {
	order := make([]string, 0)
	rows := make(map[string]*models.Standing)

	row := func(name string) *models.Standing {
		if r, ok := rows[name]; ok {
			return r
		}
		r := &models.Standing{TeamName: name}
		rows[name] = r
		order = append(order, name)
		return r
	}

	for _, m := range matches {
		if m.Type != models.MatchTypeLeague || !m.IsCompleted() || m.Winner == nil {
			continue
		}
		row(m.Team1Name).Played++
		row(m.Team2Name).Played++

		winner := row(m.WinnerName())
		winner.Won++
		winner.Points += PointsPerWin
	}

	table := make([]models.Standing, 0, len(order))
	for _, name := range order {
		table = append(table, *rows[name])
	}
	sortByRank(table)
	return table
}

func sortByRank(table []models.Standing) {
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].Won > table[j].Won
	})
}
