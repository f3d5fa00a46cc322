package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/matchcourt/academy-system/models"
	"github.com/matchcourt/academy-system/repositories"
)

// In-memory repository fakes. The Transactor fake just runs the function; the
// fakes themselves are the "database".

type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	nextID      int
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, tournaments: make(map[int]*models.Tournament)}
}

func (r *fakeTournamentRepo) add(t models.Tournament) *models.Tournament {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.tournaments[t.ID] = &t
	return &t
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	created := r.add(*t)
	*t = *created
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	nextID        int
	registrations []models.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (r *fakeRegistrationRepo) addApproved(tournamentID int, names ...string) {
	for _, name := range names {
		reg := models.Registration{
			TournamentID: tournamentID,
			TeamName:     name,
			Status:       models.RegistrationStatusApproved,
		}
		_ = r.Create(context.Background(), &reg)
	}
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.registrations {
		if existing.TournamentID == reg.TournamentID && existing.TeamName == reg.TeamName {
			return repositories.ErrRegistrationTeamConflict
		}
	}
	reg.ID = r.nextID
	r.nextID++
	r.registrations = append(r.registrations, *reg)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.ID == id {
			copied := reg
			return &copied, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID int, status *models.RegistrationStatus) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Registration, 0)
	for _, reg := range r.registrations {
		if reg.TournamentID != tournamentID {
			continue
		}
		if status != nil && reg.Status != *status {
			continue
		}
		out = append(out, reg)
	}
	return out, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.registrations {
		if r.registrations[i].ID == id {
			r.registrations[i].Status = status
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  int
	matches []models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1}
}

func (r *fakeMatchRepo) seed(matches ...models.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		m.ID = r.nextID
		r.nextID++
		r.matches = append(r.matches, m)
	}
}

// completeByNumber marks a stored match completed with the given winner, the
// way a score-update flow would.
func (r *fakeMatchRepo) completeByNumber(matchNumber int, winner models.MatchWinner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].MatchNumber == matchNumber {
			w := winner
			r.matches[i].Status = models.MatchStatusCompleted
			r.matches[i].Winner = &w
			return
		}
	}
}

func (r *fakeMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []models.Match) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		m.ID = r.nextID
		r.nextID++
		r.matches = append(r.matches, m)
		created = append(created, m)
	}
	return created, nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if filter.Round != nil && m.Round != *filter.Round {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) DeleteAllByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return nil
}

func (r *fakeMatchRepo) MaxMatchNumber(ctx context.Context, tournamentID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxNumber := 0
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.MatchNumber > maxNumber {
			maxNumber = m.MatchNumber
		}
	}
	return maxNumber, nil
}

func (r *fakeMatchRepo) UpdateScoreStatusWinner(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == match.ID {
			r.matches[i] = *match
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
