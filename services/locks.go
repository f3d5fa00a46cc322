package services

import "sync"

// tournamentLocks serializes lifecycle operations per tournament. Start,
// generate-playoffs and reset all read the current match set before writing;
// two concurrent calls could both pass the stage checks and generate a stage
// twice, so each tournament gets one mutex for the duration of the process.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newTournamentLocks() *tournamentLocks {
	return &tournamentLocks{locks: make(map[int]*sync.Mutex)}
}

// lock acquires the mutex for a tournament and returns its unlock func.
func (l *tournamentLocks) lock(tournamentID int) func() {
	l.mu.Lock()
	m, ok := l.locks[tournamentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tournamentID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
