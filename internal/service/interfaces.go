package service

import (
	"context"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// HistoryStore persists the ended-session history and the default hourly
// rate. Sessions are kept newest first.
type HistoryStore interface {
	LoadSessions(ctx context.Context) ([]domain.Session, error)
	SaveSessions(ctx context.Context, sessions []domain.Session) error
	// LoadHourlyRate reports ok=false when no rate has been stored yet.
	LoadHourlyRate(ctx context.Context) (rate float64, ok bool, err error)
	SaveHourlyRate(ctx context.Context, rate float64) error
}
