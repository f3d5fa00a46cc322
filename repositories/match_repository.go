package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/matchcourt/academy-system/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchNumberConflict    = errors.New("match number already used in this tournament")
	ErrMatchTournamentInvalid = errors.New("match references an unknown tournament")
)

type ListMatchesFilter struct {
	Round  *int
	Type   *models.MatchType
	Status *models.MatchStatus
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) ([]models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, filter ListMatchesFilter) ([]models.Match, error)
	DeleteAllByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
	MaxMatchNumber(ctx context.Context, tournamentID int) (int, error)
	UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, match *models.Match) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch inserts every match, usually inside a transaction passed by the
// service, so a generated stage lands all-or-nothing.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []models.Match) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(tournament_id, match_number, round, group_label, type,
			 team1_name, team1_score, team2_name, team2_score,
			 target_score, status, winner, score_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	created := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		history, err := json.Marshal(match.ScoreHistory)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal score history for match %d: %w", match.MatchNumber, err)
		}

		err = executor.QueryRowContext(ctx, query,
			match.TournamentID,
			match.MatchNumber,
			match.Round,
			match.GroupLabel,
			match.Type,
			match.Team1Name,
			match.Team1Score,
			match.Team2Name,
			match.Team2Score,
			match.TargetScore,
			match.Status,
			match.Winner,
			history,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return nil, r.handleMatchError(err)
		}
		created = append(created, match)
	}
	return created, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, match_number, round, group_label, type,
		       team1_name, team1_score, team2_name, team2_score,
		       target_score, status, winner, score_history, created_at
		FROM matches
		WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, filter ListMatchesFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, tournament_id, match_number, round, group_label, type,
		       team1_name, team1_score, team2_name, team2_score,
		       target_score, status, winner, score_history, created_at
		FROM matches
		WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if filter.Round != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Round)
		placeholderIndex++
	}
	if filter.Type != nil {
		queryBuilder.WriteString(" AND type = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Type)
		placeholderIndex++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
	}

	queryBuilder.WriteString(" ORDER BY match_number ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, *match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) DeleteAllByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matches WHERE tournament_id = $1`
	// Zero affected rows is fine here: a draft tournament has no matches yet.
	_, err := executor.ExecContext(ctx, query, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) MaxMatchNumber(ctx context.Context, tournamentID int) (int, error) {
	query := `SELECT COALESCE(MAX(match_number), 0) FROM matches WHERE tournament_id = $1`
	var max int
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max match number for tournament %d: %w", tournamentID, err)
	}
	return max, nil
}

func (r *postgresMatchRepository) UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	history, err := json.Marshal(match.ScoreHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal score history for match %d: %w", match.ID, err)
	}

	query := `
		UPDATE matches
		SET team1_score = $1, team2_score = $2, status = $3, winner = $4, score_history = $5
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query,
		match.Team1Score, match.Team2Score, match.Status, match.Winner, history, match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	var history []byte
	err := row.Scan(
		&match.ID,
		&match.TournamentID,
		&match.MatchNumber,
		&match.Round,
		&match.GroupLabel,
		&match.Type,
		&match.Team1Name,
		&match.Team1Score,
		&match.Team2Name,
		&match.Team2Score,
		&match.TargetScore,
		&match.Status,
		&match.Winner,
		&history,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	match.ScoreHistory = []models.ScoreEvent{}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &match.ScoreHistory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score history for match %d: %w", match.ID, err)
		}
	}
	return match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		// "23505": unique_violation, backs the per-tournament serialization
		// contract for concurrent stage generation
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_tournament_id_match_number_key":
			return ErrMatchNumberConflict
		}
	}
	return err
}
