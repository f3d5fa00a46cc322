package brackets

import (
	"context"
	"fmt"

	"github.com/matchcourt/academy-system/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() StageGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate splits the teams into pools and creates every pairwise match within
// each pool exactly once. A pool of K teams produces K*(K-1)/2 matches and every
// team plays K-1 of them. Match numbers run through the pools in order, so the
// whole opening stage is numbered contiguously from params.NextMatchNumber.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) (*StageResult, error) {
	teams := params.Teams
	if len(teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(teams))
	}

	pools := SplitIntoPools(teams)
	matches := make([]models.Match, 0)
	number := params.NextMatchNumber

	for poolIndex, pool := range pools {
		label := PoolLabel(poolIndex)
		for i := 0; i < len(pool); i++ {
			for j := i + 1; j < len(pool); j++ {
				poolLabel := label
				matches = append(matches, newMatch(
					params.TournamentID,
					number,
					models.RoundOpening,
					models.MatchTypeLeague,
					&poolLabel,
					pool[i],
					pool[j],
				))
				number++
			}
		}
	}

	return &StageResult{Matches: matches}, nil
}
