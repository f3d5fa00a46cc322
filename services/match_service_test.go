package services

import (
	"context"
	"testing"

	"github.com/matchcourt/academy-system/brackets"
	"github.com/matchcourt/academy-system/models"
	"github.com/matchcourt/academy-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	service     MatchService
	tournaments *fakeTournamentRepo
	matches     *fakeMatchRepo
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		tournaments: newFakeTournamentRepo(),
		matches:     newFakeMatchRepo(),
	}
	f.service = NewMatchService(fakeTransactor{}, f.matches, f.tournaments, discardLogger())
	return f
}

func (f *matchFixture) seedMatch(m models.Match) *models.Match {
	f.matches.seed(m)
	stored, err := f.matches.ListByTournament(context.Background(), m.TournamentID, repositories.ListMatchesFilter{})
	if err != nil || len(stored) == 0 {
		panic("seedMatch: match not stored")
	}
	return &stored[len(stored)-1]
}

func pendingMatch(tournamentID, number, round int) models.Match {
	return models.Match{
		TournamentID: tournamentID,
		MatchNumber:  number,
		Round:        round,
		Type:         models.MatchTypeLeague,
		Team1Name:    "Smash Bros",
		Team2Name:    "Net Rippers",
		TargetScore:  brackets.DefaultTargetScore,
		Status:       models.MatchStatusPending,
	}
}

func TestRecordScoreUpdatesRunningScore(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	updated, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 7})
	require.NoError(t, err)

	assert.Equal(t, 7, updated.Team1Score)
	assert.Equal(t, 0, updated.Team2Score)
	assert.Equal(t, models.MatchStatusInProgress, updated.Status)
	assert.Nil(t, updated.Winner)
	require.Len(t, updated.ScoreHistory, 1)
	assert.Equal(t, "Smash Bros", updated.ScoreHistory[0].Team)
	assert.Equal(t, 7, updated.ScoreHistory[0].Score)
	assert.False(t, updated.ScoreHistory[0].RecordedAt.IsZero())
}

func TestRecordScoreAppendsHistory(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	_, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 5})
	require.NoError(t, err)
	_, err = f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team2", Score: 3})
	require.NoError(t, err)
	updated, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 11})
	require.NoError(t, err)

	require.Len(t, updated.ScoreHistory, 3)
	assert.Equal(t, "Smash Bros", updated.ScoreHistory[0].Team)
	assert.Equal(t, "Net Rippers", updated.ScoreHistory[1].Team)
	assert.Equal(t, 11, updated.ScoreHistory[2].Score)
	assert.Equal(t, 11, updated.Team1Score)
	assert.Equal(t, 3, updated.Team2Score)
}

func TestRecordScoreReachingTargetCompletesMatch(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	updated, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team2", Score: 21})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, updated.Status)
	require.NotNil(t, updated.Winner)
	assert.Equal(t, models.WinnerTeam2, *updated.Winner)
	assert.Equal(t, "Net Rippers", updated.WinnerName())
}

func TestRecordScorePastTargetStillCompletes(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	updated, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 25})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, updated.Status)
	require.NotNil(t, updated.Winner)
	assert.Equal(t, models.WinnerTeam1, *updated.Winner)
}

func TestRecordScoreOnCompletedMatch(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	_, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 21})
	require.NoError(t, err)

	_, err = f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team2", Score: 5})
	assert.ErrorIs(t, err, ErrMatchAlreadyCompleted)
}

func TestRecordScoreRejectsUnknownTeam(t *testing.T) {
	f := newMatchFixture()
	seeded := f.seedMatch(pendingMatch(1, 1, models.RoundOpening))

	_, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "referee", Score: 3})
	assert.ErrorIs(t, err, ErrInvalidScoringTeam)

	// No history entry should have been written.
	stored, err := f.service.GetMatchByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ScoreHistory)
	assert.Equal(t, models.MatchStatusPending, stored.Status)
}

func TestRecordScoreUnknownMatch(t *testing.T) {
	f := newMatchFixture()

	_, err := f.service.RecordScore(context.Background(), 404, RecordScoreInput{Team: "team1", Score: 1})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestWinningFinalCompletesTournament(t *testing.T) {
	f := newMatchFixture()
	tournament := f.tournaments.add(models.Tournament{
		Name:   "Autumn Cup",
		Format: "league",
		Status: models.TournamentStatusActive,
	})

	final := pendingMatch(tournament.ID, 12, models.RoundFinal)
	final.Type = models.MatchTypeKnockout
	seeded := f.seedMatch(final)

	updated, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team1", Score: 21})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)

	stored, err := f.tournaments.GetByID(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TournamentStatusCompleted, stored.Status)
}

func TestWinningSemiFinalLeavesTournamentActive(t *testing.T) {
	f := newMatchFixture()
	tournament := f.tournaments.add(models.Tournament{
		Name:   "Autumn Cup",
		Format: "league",
		Status: models.TournamentStatusActive,
	})

	semi := pendingMatch(tournament.ID, 10, models.RoundSemiFinal)
	semi.Type = models.MatchTypeKnockout
	seeded := f.seedMatch(semi)

	_, err := f.service.RecordScore(context.Background(), seeded.ID, RecordScoreInput{Team: "team2", Score: 21})
	require.NoError(t, err)

	stored, err := f.tournaments.GetByID(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TournamentStatusActive, stored.Status)
}
