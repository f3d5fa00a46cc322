package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matchcourt/academy-system/models"
	"github.com/matchcourt/academy-system/repositories"
)

type RecordScoreInput struct {
	Team  string `json:"team"` // "team1" or "team2"
	Score int    `json:"score"`
}

type MatchService interface {
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]models.Match, error)
	RecordScore(ctx context.Context, matchID int, input RecordScoreInput) (*models.Match, error)
}

type matchService struct {
	transactor     repositories.Transactor
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewMatchService(
	transactor repositories.Transactor,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		transactor:     transactor,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

// RecordScore sets the running score for one side of a match and appends the
// action to the score history. Reaching the target score completes the match
// and fixes the winner; completing the final also completes the tournament.
func (s *matchService) RecordScore(ctx context.Context, matchID int, input RecordScoreInput) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.IsCompleted() {
		return nil, ErrMatchAlreadyCompleted
	}

	var teamName string
	switch models.MatchWinner(input.Team) {
	case models.WinnerTeam1:
		match.Team1Score = input.Score
		teamName = match.Team1Name
	case models.WinnerTeam2:
		match.Team2Score = input.Score
		teamName = match.Team2Name
	default:
		return nil, ErrInvalidScoringTeam
	}

	match.Status = models.MatchStatusInProgress
	match.ScoreHistory = append(match.ScoreHistory, models.ScoreEvent{
		Team:       teamName,
		Score:      input.Score,
		RecordedAt: time.Now().UTC(),
	})

	finalWon := false
	if input.Score >= match.TargetScore {
		match.Status = models.MatchStatusCompleted
		winner := models.MatchWinner(input.Team)
		match.Winner = &winner
		finalWon = match.Round == models.RoundFinal
	}

	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.UpdateScoreStatusWinner(ctx, exec, match); err != nil {
			return err
		}
		if finalWon {
			return s.tournamentRepo.UpdateStatus(ctx, exec, match.TournamentID, models.TournamentStatusCompleted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if match.IsCompleted() {
		s.logger.Info("match completed",
			slog.Int("match_id", match.ID),
			slog.Int("tournament_id", match.TournamentID),
			slog.String("winner", match.WinnerName()),
		)
	}
	if finalWon {
		s.logger.Info("tournament completed",
			slog.Int("tournament_id", match.TournamentID),
			slog.String("champion", match.WinnerName()),
		)
	}
	return match, nil
}
