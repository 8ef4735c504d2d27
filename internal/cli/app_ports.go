package cli

import (
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/timer"
)

// SessionTimer is the part of *timer.SessionTimer the CLI and dashboard drive.
type SessionTimer interface {
	Start() bool
	Pause() bool
	Resume() bool
	End() (domain.Session, bool)
	DeleteSession(id string) bool
	ClearAllSessions()
	UpdateHourlyRate(rate float64) error
	Refresh()
	Snapshot() timer.Snapshot
	Subscribe(fn func(timer.Snapshot)) (unsubscribe func())
}

var _ SessionTimer = (*timer.SessionTimer)(nil)

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
