package models

import (
	"strings"
	"time"
)

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	TournamentStatusDraft     TournamentStatus = "draft"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Tournament представляет турнир академии.
type Tournament struct {
	ID              int              `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Format          string           `json:"format" db:"format"`
	Status          TournamentStatus `json:"status" db:"status"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Matches []Match `json:"matches,omitempty" db:"-"`
}

// IsLeagueFormat reports whether the tournament runs pool play before playoffs.
// Format is free text; any mention of "league" or "round robin" selects pool play,
// everything else is a straight knockout.
func (t *Tournament) IsLeagueFormat() bool {
	format := strings.ToLower(t.Format)
	return strings.Contains(format, "league") || strings.Contains(format, "round robin")
}
