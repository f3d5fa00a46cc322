package brackets

import (
	"fmt"

	"github.com/matchcourt/academy-system/models"
)

// poolLetters caps lettered labels at Group H; later pools fall back to numbers.
var poolLetters = [...]string{"A", "B", "C", "D", "E", "F", "G", "H"}

// PoolLabel returns the display label for a pool index: "Group A" through
// "Group H", then "Group 9", "Group 10" and so on.
func PoolLabel(index int) string {
	if index < len(poolLetters) {
		return "Group " + poolLetters[index]
	}
	return fmt.Sprintf("Group %d", index+1)
}

// PoolCount determines how many pools n teams are split into. Small fields aim
// for pools of three, mid-size fields for pools of four, and large fields for
// pools of up to six but never fewer than four pools.
func PoolCount(n int) int {
	if n <= 0 {
		return 0
	}
	var pools int
	switch {
	case n < 11:
		pools = ceilDiv(n, 3)
	case n <= 12:
		pools = ceilDiv(n, 4)
	default:
		pools = ceilDiv(n, 6)
		if pools < 4 {
			pools = 4
		}
	}
	if pools < 1 {
		pools = 1
	}
	return pools
}

// SplitIntoPools assigns teams to pools as contiguous blocks in the order they
// were given, which is registration order. Chunking uses the real-valued pool
// size, so remainders attach to the leading pools: 11 teams over 3 pools gives
// 4/4/3, not 3/4/4. The input order is never shuffled; seeding stays
// deterministic.
func SplitIntoPools(teams []models.Team) [][]models.Team {
	n := len(teams)
	if n == 0 {
		return nil
	}
	numPools := PoolCount(n)
	poolSize := float64(n) / float64(numPools)

	pools := make([][]models.Team, numPools)
	for i, team := range teams {
		idx := int(float64(i) / poolSize)
		if idx > numPools-1 {
			idx = numPools - 1
		}
		pools[idx] = append(pools[idx], team)
	}
	return pools
}

// GroupByPool recovers pool membership from generated matches. Pools are never
// stored as entities; the group label on each match is the only record of where
// a team was placed, so grouping matches is the single source of truth.
func GroupByPool(matches []models.Match) map[string][]models.Match {
	grouped := make(map[string][]models.Match)
	for _, m := range matches {
		if m.GroupLabel == nil {
			continue
		}
		grouped[*m.GroupLabel] = append(grouped[*m.GroupLabel], m)
	}
	return grouped
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
