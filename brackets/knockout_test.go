package brackets

import (
	"context"
	"testing"

	"github.com/matchcourt/academy-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnockoutPairsSequentially(t *testing.T) {
	result, err := NewKnockoutGenerator().Generate(context.Background(), GenerateParams{
		TournamentID:    3,
		Teams:           makeTeams(4),
		NextMatchNumber: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Empty(t, result.Byes)

	assert.Equal(t, "Team 1", result.Matches[0].Team1Name)
	assert.Equal(t, "Team 2", result.Matches[0].Team2Name)
	assert.Equal(t, "Team 3", result.Matches[1].Team1Name)
	assert.Equal(t, "Team 4", result.Matches[1].Team2Name)

	for i, m := range result.Matches {
		assert.Equal(t, i+1, m.MatchNumber)
		assert.Equal(t, models.RoundOpening, m.Round)
		assert.Equal(t, models.MatchTypeKnockout, m.Type)
		assert.Nil(t, m.GroupLabel)
		assert.Equal(t, models.MatchStatusPending, m.Status)
	}
}

func TestKnockoutOddTeamGetsBye(t *testing.T) {
	// The unpaired team receives no match and no automatic advance. That is the
	// documented behavior, not a desirable one; the caller is expected to log it.
	result, err := NewKnockoutGenerator().Generate(context.Background(), GenerateParams{
		TournamentID:    3,
		Teams:           makeTeams(5),
		NextMatchNumber: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	require.Len(t, result.Byes, 1)
	assert.Equal(t, "Team 5", result.Byes[0].Name)

	for _, m := range result.Matches {
		assert.NotEqual(t, "Team 5", m.Team1Name)
		assert.NotEqual(t, "Team 5", m.Team2Name)
	}
}

func TestKnockoutNotEnoughTeams(t *testing.T) {
	_, err := NewKnockoutGenerator().Generate(context.Background(), GenerateParams{
		TournamentID:    3,
		Teams:           makeTeams(1),
		NextMatchNumber: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough teams")
}

func TestKnockoutContinuesMatchNumbering(t *testing.T) {
	result, err := NewKnockoutGenerator().Generate(context.Background(), GenerateParams{
		TournamentID:    3,
		Teams:           makeTeams(6),
		NextMatchNumber: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, 10, result.Matches[0].MatchNumber)
	assert.Equal(t, 11, result.Matches[1].MatchNumber)
	assert.Equal(t, 12, result.Matches[2].MatchNumber)
}
