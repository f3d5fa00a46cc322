package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

type MatchType string

const (
	MatchTypeLeague   MatchType = "league"
	MatchTypeKnockout MatchType = "knockout"
)

// MatchWinner identifies the winning slot of a match, not a team entity.
type MatchWinner string

const (
	WinnerTeam1 MatchWinner = "team1"
	WinnerTeam2 MatchWinner = "team2"
)

// Раунды внутри турнира. Групповой этап и первый раунд плей-офф делят раунд 1.
const (
	RoundOpening   = 1
	RoundSemiFinal = 2
	RoundFinal     = 3
)

// ScoreEvent is one recorded scoring action, kept as an append-only history on
// the match.
type ScoreEvent struct {
	Team       string    `json:"team"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Match хранит команды по имени, а не по внешнему ключу: команды существуют
// только как одобренные заявки и отдельной сущности в БД не имеют.
type Match struct {
	ID           int          `json:"id" db:"id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	MatchNumber  int          `json:"match_number" db:"match_number"`
	Round        int          `json:"round" db:"round"`
	GroupLabel   *string      `json:"group,omitempty" db:"group_label"`
	Type         MatchType    `json:"type" db:"type"`
	Team1Name    string       `json:"team1_name" db:"team1_name"`
	Team1Score   int          `json:"team1_score" db:"team1_score"`
	Team2Name    string       `json:"team2_name" db:"team2_name"`
	Team2Score   int          `json:"team2_score" db:"team2_score"`
	TargetScore  int          `json:"target_score" db:"target_score"`
	Status       MatchStatus  `json:"status" db:"status"`
	Winner       *MatchWinner `json:"winner,omitempty" db:"winner"`
	ScoreHistory []ScoreEvent `json:"score_history" db:"score_history"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted
}

// WinnerName returns the name of the winning team, or an empty string while the
// match has no winner.
func (m *Match) WinnerName() string {
	if m.Winner == nil {
		return ""
	}
	switch *m.Winner {
	case WinnerTeam1:
		return m.Team1Name
	case WinnerTeam2:
		return m.Team2Name
	}
	return ""
}
