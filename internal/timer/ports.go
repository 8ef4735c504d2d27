package timer

import (
	"context"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// Store is the persistence port. service.NewHistoryStore satisfies it.
type Store interface {
	LoadSessions(ctx context.Context) ([]domain.Session, error)
	SaveSessions(ctx context.Context, sessions []domain.Session) error
	LoadHourlyRate(ctx context.Context) (rate float64, ok bool, err error)
	SaveHourlyRate(ctx context.Context, rate float64) error
}
