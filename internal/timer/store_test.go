package timer

import (
	"context"
	"sync"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// memStore is an in-memory Store with injectable failures.
type memStore struct {
	mu        sync.Mutex
	sessions  []domain.Session
	rate      float64
	hasRate   bool
	loadErr   error
	rateErr   error
	saveErr   error
	saves     int
	rateSaves int
}

func (m *memStore) LoadSessions(context.Context) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return copySessions(m.sessions), nil
}

func (m *memStore) SaveSessions(_ context.Context, sessions []domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.sessions = copySessions(sessions)
	return nil
}

func (m *memStore) LoadHourlyRate(context.Context) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rateErr != nil {
		return 0, false, m.rateErr
	}
	return m.rate, m.hasRate, nil
}

func (m *memStore) SaveHourlyRate(_ context.Context, rate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rateSaves++
	m.rate = rate
	m.hasRate = true
	return nil
}

func (m *memStore) stored() []domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySessions(m.sessions)
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memStore) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
