package brackets

import (
	"context"
	"fmt"

	"github.com/matchcourt/academy-system/models"
)

type KnockoutGenerator struct{}

func NewKnockoutGenerator() StageGenerator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) Name() string {
	return "Knockout"
}

// Generate pairs the teams in the order they were given: (1,2), (3,4) and so
// on. With an odd team count the last team is returned as a bye and gets no
// match and no automatic advance; the caller decides how to surface that.
func (g *KnockoutGenerator) Generate(ctx context.Context, params GenerateParams) (*StageResult, error) {
	teams := params.Teams
	if len(teams) < 2 {
		return nil, fmt.Errorf("KnockoutGenerator: not enough teams (found %d, min 2 required)", len(teams))
	}

	result := &StageResult{Matches: make([]models.Match, 0, len(teams)/2)}
	number := params.NextMatchNumber

	for i := 0; i+1 < len(teams); i += 2 {
		result.Matches = append(result.Matches, newMatch(
			params.TournamentID,
			number,
			models.RoundOpening,
			models.MatchTypeKnockout,
			nil,
			teams[i],
			teams[i+1],
		))
		number++
	}

	if len(teams)%2 != 0 {
		result.Byes = append(result.Byes, teams[len(teams)-1])
	}

	return result, nil
}
