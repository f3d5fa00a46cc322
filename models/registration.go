package models

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

// Registration представляет заявку команды на турнир. Одобренная заявка и есть
// команда: имя уникально в рамках турнира.
type Registration struct {
	ID           int                `json:"id" db:"id"`
	TournamentID int                `json:"tournament_id" db:"tournament_id"`
	TeamName     string             `json:"team_name" db:"team_name"`
	Status       RegistrationStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}

// Team is the identity a match or standing refers to. Matches denormalize the
// name, so a team is a value, not a persisted entity.
type Team struct {
	Name string `json:"name"`
}
