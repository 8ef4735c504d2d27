package timer

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/clockwork/internal/service"
)

// DefaultTickInterval is how often elapsed time refreshes while running.
const DefaultTickInterval = time.Second

// Option configures a SessionTimer.
type Option func(*SessionTimer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *SessionTimer) {
		if now != nil {
			t.now = now
		}
	}
}

// WithTickInterval sets the refresh cadence. Non-positive values keep the default.
func WithTickInterval(d time.Duration) Option {
	return func(t *SessionTimer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithLogger sets the logger used for load and save failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *SessionTimer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithObserver reports each operation as a use-case event.
func WithObserver(obs service.UseCaseObserver) Option {
	return func(t *SessionTimer) {
		t.observer = service.UseCaseObserverOrNoop(obs)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
