package brackets

import (
	"context"

	"github.com/matchcourt/academy-system/models"
)

// DefaultTargetScore is the score a team must reach to win a generated match.
const DefaultTargetScore = 21

// GenerateParams carries the inputs for an opening-stage generator.
// NextMatchNumber is the tournament-wide match counter; generators number their
// matches starting from it so numbering stays contiguous across pools and stages.
type GenerateParams struct {
	TournamentID    int
	Teams           []models.Team
	NextMatchNumber int
}

// StageResult is the outcome of generating one stage. Byes lists teams the
// generator could not pair; they receive no match and no automatic advance.
type StageResult struct {
	Matches []models.Match
	Byes    []models.Team
}

type StageGenerator interface {
	Generate(ctx context.Context, params GenerateParams) (*StageResult, error)

	Name() string
}

func newMatch(tournamentID, number, round int, matchType models.MatchType, group *string, team1, team2 models.Team) models.Match {
	return models.Match{
		TournamentID: tournamentID,
		MatchNumber:  number,
		Round:        round,
		GroupLabel:   group,
		Type:         matchType,
		Team1Name:    team1.Name,
		Team2Name:    team2.Name,
		TargetScore:  DefaultTargetScore,
		Status:       models.MatchStatusPending,
		ScoreHistory: []models.ScoreEvent{},
	}
}
