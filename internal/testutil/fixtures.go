package testutil

import (
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/google/uuid"
)

// Epoch is a fixed reference instant for deterministic tests.
var Epoch = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

// SessionOption customizes a fixture session.
type SessionOption func(*domain.Session)

func WithStart(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.StartTime = t.UTC()
	}
}

// WithLength ends the session length after its start.
func WithLength(d time.Duration) SessionOption {
	return func(s *domain.Session) {
		end := s.StartTime.Add(d)
		s.EndTime = &end
	}
}

func WithPaused(d time.Duration) SessionOption {
	return func(s *domain.Session) {
		s.TotalPaused = d
	}
}

func WithRate(rate float64) SessionOption {
	return func(s *domain.Session) {
		s.HourlyRate = rate
	}
}

// Active leaves the session without an end time.
func Active() SessionOption {
	return func(s *domain.Session) {
		s.EndTime = nil
	}
}

// NewTestSession returns an ended one-hour session at $100/hr starting at Epoch.
// Options apply in order, so WithStart should precede WithLength.
func NewTestSession(opts ...SessionOption) *domain.Session {
	end := Epoch.Add(time.Hour)
	s := &domain.Session{
		ID:         uuid.New().String(),
		StartTime:  Epoch,
		EndTime:    &end,
		HourlyRate: domain.DefaultHourlyRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
