package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchcourt/academy-system/models"
	"github.com/matchcourt/academy-system/repositories"
)

type RegisterTeamInput struct {
	TeamName string `json:"team_name"`
}

type RegistrationService interface {
	RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Registration, error)
	ListRegistrations(ctx context.Context, tournamentID int, status *models.RegistrationStatus) ([]models.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, registrationID int, status models.RegistrationStatus) (*models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
	}
}

// RegisterTeam files a pending registration. Registration is only open while
// the tournament is still a draft; once matches reference team names the field
// is frozen.
func (s *registrationService) RegisterTeam(ctx context.Context, tournamentID int, input RegisterTeamInput) (*models.Registration, error) {
	if input.TeamName == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.TournamentStatusDraft {
		return nil, ErrRegistrationNotOpen
	}

	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}
	if tournament.MaxParticipants > 0 && len(registrations) >= tournament.MaxParticipants {
		return nil, ErrTournamentFull
	}

	registration := &models.Registration{
		TournamentID: tournamentID,
		TeamName:     input.TeamName,
		Status:       models.RegistrationStatusPending,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationTeamConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return registration, nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, tournamentID int, status *models.RegistrationStatus) ([]models.Registration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.registrationRepo.ListByTournament(ctx, tournamentID, status)
}

func (s *registrationService) UpdateRegistrationStatus(ctx context.Context, registrationID int, status models.RegistrationStatus) (*models.Registration, error) {
	switch status {
	case models.RegistrationStatusPending, models.RegistrationStatusApproved, models.RegistrationStatusRejected:
	default:
		return nil, ErrInvalidRegistrationStatus
	}

	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if err := s.registrationRepo.UpdateStatus(ctx, registrationID, status); err != nil {
		return nil, err
	}
	registration.Status = status
	return registration, nil
}
