package repository

import (
	"context"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// SessionRepo stores ended sessions with an explicit display position
// (0 = newest).
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session, position int) error
	List(ctx context.Context) ([]*domain.Session, error)
	DeleteAll(ctx context.Context) error
}

// PreferencesRepo stores the default hourly rate independently of sessions.
type PreferencesRepo interface {
	Get(ctx context.Context) (*domain.Preferences, error)
	Upsert(ctx context.Context, p *domain.Preferences) error
}
