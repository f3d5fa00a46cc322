package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matchcourt/academy-system/brackets"
	"github.com/matchcourt/academy-system/models"
	"github.com/matchcourt/academy-system/repositories"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name            string `json:"name"`
	Format          string `json:"format"`
	MaxParticipants int    `json:"max_participants"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	GetBracket(ctx context.Context, id int) (*models.Tournament, error)
	GetStandings(ctx context.Context, id int) (map[string][]models.Standing, error)

	StartTournament(ctx context.Context, id int) ([]models.Match, error)
	GeneratePlayoffs(ctx context.Context, id int) ([]models.Match, error)
	ResetTournament(ctx context.Context, id int) error
}

type tournamentService struct {
	transactor       repositories.Transactor
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	roundRobin       brackets.StageGenerator
	knockout         brackets.StageGenerator
	locks            *tournamentLocks
	logger           *slog.Logger
}

func NewTournamentService(
	transactor repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		transactor:       transactor,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		roundRobin:       brackets.NewRoundRobinGenerator(),
		knockout:         brackets.NewKnockoutGenerator(),
		locks:            newTournamentLocks(),
		logger:           logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrTournamentInvalidCapacity
	}

	tournament := &models.Tournament{
		Name:            input.Name,
		Format:          input.Format,
		Status:          models.TournamentStatusDraft,
		MaxParticipants: input.MaxParticipants,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

// GetBracket loads the tournament together with all its matches. The two reads
// are independent, so they run in parallel.
func (s *tournamentService) GetBracket(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, matches, err := s.fetchTournamentWithMatches(ctx, id)
	if err != nil {
		return nil, err
	}
	tournament.Matches = matches
	return tournament, nil
}

// GetStandings recomputes every pool table from the completed league matches.
// Pools are a view over matches, so there is nothing else to read.
func (s *tournamentService) GetStandings(ctx context.Context, id int) (map[string][]models.Standing, error) {
	if _, err := s.GetTournamentByID(ctx, id); err != nil {
		return nil, err
	}

	leagueType := models.MatchTypeLeague
	matches, err := s.matchRepo.ListByTournament(ctx, id, repositories.ListMatchesFilter{Type: &leagueType})
	if err != nil {
		return nil, fmt.Errorf("failed to list league matches for tournament %d: %w", id, err)
	}

	standings := make(map[string][]models.Standing)
	for label, poolMatches := range brackets.GroupByPool(matches) {
		standings[label] = brackets.ComputeStandings(poolMatches)
	}
	return standings, nil
}

// StartTournament clears any previously generated matches and generates the
// opening stage from the approved registrations, in registration order. League
// formats get pools with round-robin play, everything else a single knockout
// round. The delete, the batch insert and the status change share one
// transaction.
func (s *tournamentService) StartTournament(ctx context.Context, id int) ([]models.Match, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status == models.TournamentStatusActive {
		return nil, ErrTournamentAlreadyActive
	}

	approved := models.RegistrationStatusApproved
	registrations, err := s.registrationRepo.ListByTournament(ctx, id, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved registrations for tournament %d: %w", id, err)
	}
	if len(registrations) < 2 {
		return nil, &InsufficientParticipantsError{Found: len(registrations)}
	}

	teams := make([]models.Team, len(registrations))
	for i, reg := range registrations {
		teams[i] = models.Team{Name: reg.TeamName}
	}

	generator := s.knockout
	if tournament.IsLeagueFormat() {
		generator = s.roundRobin
	}

	result, err := generator.Generate(ctx, brackets.GenerateParams{
		TournamentID:    id,
		Teams:           teams,
		NextMatchNumber: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening stage for tournament %d: %w", id, err)
	}
	for _, bye := range result.Byes {
		s.logger.Warn("team left without an opening match",
			slog.Int("tournament_id", id),
			slog.String("team", bye.Name),
		)
	}

	var created []models.Match
	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAllByTournament(ctx, exec, id); err != nil {
			return err
		}
		var txErr error
		created, txErr = s.matchRepo.CreateBatch(ctx, exec, result.Matches)
		if txErr != nil {
			return txErr
		}
		return s.tournamentRepo.UpdateStatus(ctx, exec, id, models.TournamentStatusActive)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tournament started",
		slog.Int("tournament_id", id),
		slog.String("generator", generator.Name()),
		slog.Int("matches", len(created)),
	)
	return created, nil
}

// GeneratePlayoffs advances the tournament by exactly one playoff stage:
// semifinals from the pool standings, or the final from the semifinal winners.
// The current matches are the whole progression state, so repeating a call in
// the same state rejects instead of duplicating a stage.
func (s *tournamentService) GeneratePlayoffs(ctx context.Context, id int) ([]models.Match, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	tournament, matches, err := s.fetchTournamentWithMatches(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusActive {
		return nil, ErrTournamentNotActive
	}

	stage, err := brackets.NextPlayoffStage(id, matches)
	if err != nil {
		return nil, err
	}

	var created []models.Match
	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var txErr error
		created, txErr = s.matchRepo.CreateBatch(ctx, exec, stage)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("playoff stage generated",
		slog.Int("tournament_id", id),
		slog.Int("round", created[0].Round),
		slog.Int("matches", len(created)),
	)
	return created, nil
}

// ResetTournament destroys every match and returns the tournament to draft.
func (s *tournamentService) ResetTournament(ctx context.Context, id int) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.GetTournamentByID(ctx, id); err != nil {
		return err
	}

	err := s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAllByTournament(ctx, exec, id); err != nil {
			return err
		}
		return s.tournamentRepo.UpdateStatus(ctx, exec, id, models.TournamentStatusDraft)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tournament reset", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) fetchTournamentWithMatches(ctx context.Context, id int) (*models.Tournament, []models.Match, error) {
	var (
		tournament *models.Tournament
		matches    []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.GetTournamentByID(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, id, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to list matches for tournament %d: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tournament, matches, nil
}
