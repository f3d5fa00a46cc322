package brackets

import (
	"testing"

	"github.com/matchcourt/academy-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedLeagueMatch(group, team1, team2 string, winner models.MatchWinner) models.Match {
	w := winner
	return models.Match{
		GroupLabel: &group,
		Type:       models.MatchTypeLeague,
		Team1Name:  team1,
		Team2Name:  team2,
		Status:     models.MatchStatusCompleted,
		Winner:     &w,
	}
}

func TestComputeStandingsRanking(t *testing.T) {
	// A beat B and C, B beat C.
	matches := []models.Match{
		completedLeagueMatch("Group A", "Alpha", "Bravo", models.WinnerTeam1),
		completedLeagueMatch("Group A", "Alpha", "Charlie", models.WinnerTeam1),
		completedLeagueMatch("Group A", "Bravo", "Charlie", models.WinnerTeam1),
	}

	table := ComputeStandings(matches)
	require.Len(t, table, 3)

	assert.Equal(t, models.Standing{TeamName: "Alpha", Played: 2, Won: 2, Points: 4}, table[0])
	assert.Equal(t, models.Standing{TeamName: "Bravo", Played: 2, Won: 1, Points: 2}, table[1])
	assert.Equal(t, models.Standing{TeamName: "Charlie", Played: 2, Won: 0, Points: 0}, table[2])
}

func TestComputeStandingsIgnoresUnfinishedAndKnockout(t *testing.T) {
	group := "Group A"
	matches := []models.Match{
		completedLeagueMatch(group, "Alpha", "Bravo", models.WinnerTeam2),
		{GroupLabel: &group, Type: models.MatchTypeLeague, Team1Name: "Alpha", Team2Name: "Delta", Status: models.MatchStatusPending},
		{GroupLabel: &group, Type: models.MatchTypeKnockout, Team1Name: "Echo", Team2Name: "Foxtrot", Status: models.MatchStatusCompleted},
	}

	table := ComputeStandings(matches)
	require.Len(t, table, 2)
	// Delta never finished a match, so it has no row at all.
	for _, row := range table {
		assert.NotEqual(t, "Delta", row.TeamName)
		assert.NotEqual(t, "Echo", row.TeamName)
	}
	assert.Equal(t, "Bravo", table[0].TeamName)
}

func TestComputeStandingsTiesKeepFirstSeenOrder(t *testing.T) {
	// Alpha and Bravo both finish on one win; Alpha appeared first.
	matches := []models.Match{
		completedLeagueMatch("Group A", "Alpha", "Charlie", models.WinnerTeam1),
		completedLeagueMatch("Group A", "Bravo", "Delta", models.WinnerTeam1),
	}

	table := ComputeStandings(matches)
	require.Len(t, table, 4)
	assert.Equal(t, "Alpha", table[0].TeamName)
	assert.Equal(t, "Bravo", table[1].TeamName)
}

func TestComputeStandingsEmpty(t *testing.T) {
	assert.Empty(t, ComputeStandings(nil))
}
