package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/repository"
)

type historyStore struct {
	sessions repository.SessionRepo
	prefs    repository.PreferencesRepo
	uow      db.UnitOfWork
	now      func() time.Time
}

// NewHistoryStore builds a HistoryStore on the SQLite repositories. Saves
// of the session list run inside one transaction so a failed write leaves
// the previous list intact.
func NewHistoryStore(sessions repository.SessionRepo, prefs repository.PreferencesRepo, uow db.UnitOfWork) HistoryStore {
	return &historyStore{sessions: sessions, prefs: prefs, uow: uow, now: time.Now}
}

func (h *historyStore) LoadSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := h.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	out := make([]domain.Session, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	return out, nil
}

func (h *historyStore) SaveSessions(ctx context.Context, sessions []domain.Session) error {
	return h.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		if err := txSessions.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range sessions {
			if err := txSessions.Create(ctx, &sessions[i], i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *historyStore) LoadHourlyRate(ctx context.Context) (float64, bool, error) {
	p, err := h.prefs.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("loading hourly rate: %w", err)
	}
	return p.HourlyRate, true, nil
}

func (h *historyStore) SaveHourlyRate(ctx context.Context, rate float64) error {
	return h.prefs.Upsert(ctx, &domain.Preferences{
		ID:         domain.DefaultPreferencesID,
		HourlyRate: rate,
		UpdatedAt:  h.now().UTC(),
	})
}
