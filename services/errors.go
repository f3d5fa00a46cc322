package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrRegistrationNotFound = errors.New("registration not found")

	// Ошибки валидации и бизнес-правил
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentInvalidCapacity = errors.New("tournament max participants must be positive")
	ErrTeamNameRequired          = errors.New("team name is required")
	ErrInvalidRegistrationStatus = errors.New("invalid registration status provided")
	ErrRegistrationNotOpen       = errors.New("tournament registration is not open")
	ErrTournamentFull            = errors.New("tournament registration is full")

	// Ошибки жизненного цикла турнира
	ErrTournamentAlreadyActive = errors.New("tournament has already been started")
	ErrTournamentNotActive     = errors.New("tournament is not active")

	// Ошибки матчей
	ErrMatchAlreadyCompleted = errors.New("match has already been completed")
	ErrInvalidScoringTeam    = errors.New("score must reference team1 or team2")

	// Ошибки конфликтов
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrRegistrationConflict   = errors.New("team is already registered for this tournament")
)

// InsufficientParticipantsError rejects a tournament start with the actual
// count, so the caller knows how many more approvals are needed.
type InsufficientParticipantsError struct {
	Found int
}

func (e *InsufficientParticipantsError) Error() string {
	return fmt.Sprintf("at least 2 approved registrations are required to start (found %d)", e.Found)
}
