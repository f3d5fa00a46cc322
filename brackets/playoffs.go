package brackets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matchcourt/academy-system/models"
)

// Stage labels used on playoff matches.
const (
	LabelSemiFinal1 = "Semi Final 1"
	LabelSemiFinal2 = "Semi Final 2"
	LabelFinal      = "Final"
)

var (
	ErrFinalAlreadyGenerated    = errors.New("final match already generated")
	ErrSemiFinalsInProgress     = errors.New("semi-finals still in progress")
	ErrNoCompletedLeagueMatches = errors.New("no completed league matches found")
)

// NotEnoughQualifiersError reports how many semifinal qualifiers the pool
// results produced when fewer than four were available.
type NotEnoughQualifiersError struct {
	Found int
}

func (e *NotEnoughQualifiersError) Error() string {
	return fmt.Sprintf("not enough teams to generate semi-finals (found %d, need 4)", e.Found)
}

// NextPlayoffStage inspects the matches already generated for a tournament and
// produces exactly the next playoff stage:
//
//   - a final already exists: reject, the bracket is complete;
//   - semifinals exist: pair their two winners into the final, once both are done;
//   - otherwise: seed four semifinalists from the pool standings.
//
// The existing matches are the whole state, so calling this twice without
// completing the stage in between rejects rather than duplicating anything.
func NextPlayoffStage(tournamentID int, matches []models.Match) ([]models.Match, error) {
	semis := make([]models.Match, 0, 2)
	maxNumber := 0
	for _, m := range matches {
		if m.MatchNumber > maxNumber {
			maxNumber = m.MatchNumber
		}
		switch m.Round {
		case models.RoundFinal:
			return nil, ErrFinalAlreadyGenerated
		case models.RoundSemiFinal:
			semis = append(semis, m)
		}
	}

	if len(semis) > 0 {
		return generateFinal(tournamentID, semis)
	}
	return generateSemiFinals(tournamentID, matches, maxNumber)
}

func generateFinal(tournamentID int, semis []models.Match) ([]models.Match, error) {
	sort.SliceStable(semis, func(i, j int) bool {
		return semis[i].MatchNumber < semis[j].MatchNumber
	})

	maxSemiNumber := 0
	completed := make([]models.Match, 0, len(semis))
	for _, m := range semis {
		if m.MatchNumber > maxSemiNumber {
			maxSemiNumber = m.MatchNumber
		}
		if m.IsCompleted() && m.Winner != nil {
			completed = append(completed, m)
		}
	}
	if len(completed) < 2 {
		return nil, ErrSemiFinalsInProgress
	}

	label := LabelFinal
	final := newMatch(
		tournamentID,
		maxSemiNumber+1,
		models.RoundFinal,
		models.MatchTypeKnockout,
		&label,
		models.Team{Name: completed[0].WinnerName()},
		models.Team{Name: completed[1].WinnerName()},
	)
	return []models.Match{final}, nil
}

func generateSemiFinals(tournamentID int, matches []models.Match, maxNumber int) ([]models.Match, error) {
	completedLeague := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Type == models.MatchTypeLeague && m.IsCompleted() && m.Winner != nil {
			completedLeague = append(completedLeague, m)
		}
	}
	if len(completedLeague) == 0 {
		return nil, ErrNoCompletedLeagueMatches
	}

	byPool := GroupByPool(completedLeague)
	labels := make([]string, 0, len(byPool))
	for label := range byPool {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	winners := make([]models.Standing, 0, len(labels))
	runnersUp := make([]models.Standing, 0, len(labels))
	for _, label := range labels {
		table := ComputeStandings(byPool[label])
		if len(table) >= 1 {
			winners = append(winners, table[0])
		}
		if len(table) >= 2 {
			runnersUp = append(runnersUp, table[1])
		}
	}

	semiFinalists := append([]models.Standing(nil), winners...)
	switch {
	case len(semiFinalists) == 3:
		// Three pools: the best runner-up takes the fourth slot.
		sortByRank(runnersUp)
		if len(runnersUp) > 0 {
			semiFinalists = append(semiFinalists, runnersUp[0])
		}
	case len(semiFinalists) > 4:
		// Five or more pools: only the four strongest pool winners advance.
		sortByRank(semiFinalists)
		semiFinalists = semiFinalists[:4]
	}

	if len(semiFinalists) < 4 {
		return nil, &NotEnoughQualifiersError{Found: len(semiFinalists)}
	}

	// Seeds 1..4 by pool performance. 1v3 and 2v4 keeps the two strongest
	// seeds apart until the final.
	sortByRank(semiFinalists)
	label1, label2 := LabelSemiFinal1, LabelSemiFinal2
	sf1 := newMatch(
		tournamentID,
		maxNumber+1,
		models.RoundSemiFinal,
		models.MatchTypeKnockout,
		&label1,
		models.Team{Name: semiFinalists[0].TeamName},
		models.Team{Name: semiFinalists[2].TeamName},
	)
	sf2 := newMatch(
		tournamentID,
		maxNumber+2,
		models.RoundSemiFinal,
		models.MatchTypeKnockout,
		&label2,
		models.Team{Name: semiFinalists[1].TeamName},
		models.Team{Name: semiFinalists[3].TeamName},
	)
	return []models.Match{sf1, sf2}, nil
}
