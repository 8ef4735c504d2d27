// Package timer owns the active work session, its pause accounting, the
// ended-session history and the default hourly rate.
//
// All operations are serialized by one mutex. Invalid transitions (pausing
// while idle, resuming while running) are no-ops reported as false, never
// errors. Persistence is best effort: failures are logged and the in-memory
// state stays authoritative until the next successful save.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
)

const saveTimeout = 5 * time.Second

// SessionTimer is the single owner of timer state. Create it with New and
// share the pointer; there is no package-level instance.
type SessionTimer struct {
	mu       sync.Mutex
	store    Store
	now      func() time.Time
	interval time.Duration
	logger   *slog.Logger
	observer service.UseCaseObserver

	current    *domain.Session
	paused     bool
	pauseStart *time.Time
	elapsed    time.Duration
	rate       float64
	sessions   []domain.Session
	version    uint64

	tickCancel context.CancelFunc
	tickGen    uint64
	closed     bool

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New loads history and rate from store and returns an idle timer. Load
// failures fall back to an empty history and domain.DefaultHourlyRate.
func New(ctx context.Context, store Store, opts ...Option) *SessionTimer {
	t := &SessionTimer{
		store:    store,
		now:      time.Now,
		interval: DefaultTickInterval,
		logger:   discardLogger(),
		observer: service.NoopUseCaseObserver{},
		rate:     domain.DefaultHourlyRate,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.load(ctx)
	return t
}

func (t *SessionTimer) load(ctx context.Context) {
	started := time.Now()

	sessions, err := t.store.LoadSessions(ctx)
	if err != nil {
		t.logger.Warn("loading session history failed; starting empty", "error", err)
		sessions = nil
	}
	t.sessions = dedupeByID(sessions)

	rate, ok, rateErr := t.store.LoadHourlyRate(ctx)
	if rateErr != nil {
		t.logger.Warn("loading hourly rate failed; using default", "error", rateErr)
		ok = false
	}
	t.rate = domain.EffectiveStoredRate(rate, ok)

	if err == nil {
		err = rateErr
	}
	t.observe(ctx, "load", started, true, err, map[string]any{
		"sessions":    len(t.sessions),
		"hourly_rate": t.rate,
	})
}

// Start begins a new session at the default rate. Only valid while idle.
func (t *SessionTimer) Start() bool {
	started := time.Now()
	t.mu.Lock()
	if t.current != nil {
		t.mu.Unlock()
		t.observe(context.Background(), "start", started, false, nil, nil)
		return false
	}

	t.current = domain.NewSession(t.now(), t.rate)
	t.paused = false
	t.pauseStart = nil
	t.elapsed = 0
	t.startTickLocked()
	id := t.current.ID
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "start", started, true, nil, map[string]any{"session_id": id})
	return true
}

// Pause stops the clock on the running session. Only valid while running.
func (t *SessionTimer) Pause() bool {
	started := time.Now()
	t.mu.Lock()
	if t.current == nil || t.paused {
		t.mu.Unlock()
		t.observe(context.Background(), "pause", started, false, nil, nil)
		return false
	}

	now := t.now()
	t.paused = true
	t.pauseStart = &now
	t.elapsed = t.current.Duration(now)
	t.stopTickLocked()
	id := t.current.ID
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "pause", started, true, nil, map[string]any{"session_id": id})
	return true
}

// Resume folds the finished pause into the session and restarts the clock.
// Only valid while paused.
func (t *SessionTimer) Resume() bool {
	started := time.Now()
	t.mu.Lock()
	if t.current == nil || !t.paused || t.pauseStart == nil {
		t.mu.Unlock()
		t.observe(context.Background(), "resume", started, false, nil, nil)
		return false
	}

	now := t.now()
	pause := now.Sub(*t.pauseStart)
	t.current.AddPause(pause)
	t.paused = false
	t.pauseStart = nil
	t.elapsed = t.current.Duration(now)
	t.startTickLocked()
	id := t.current.ID
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "resume", started, true, nil, map[string]any{
		"session_id": id,
		"paused_ms":  pause.Milliseconds(),
	})
	return true
}

// End finishes the current session, running or paused, prepends it to the
// history and persists the history. A pause in progress is folded in first.
func (t *SessionTimer) End() (domain.Session, bool) {
	started := time.Now()
	t.mu.Lock()
	if t.current == nil {
		t.mu.Unlock()
		t.observe(context.Background(), "end", started, false, nil, nil)
		return domain.Session{}, false
	}

	now := t.now()
	ended := t.current
	if t.paused && t.pauseStart != nil {
		ended.AddPause(now.Sub(*t.pauseStart))
	}
	ended.End(now)

	t.sessions = append([]domain.Session{*ended}, t.sessions...)
	err := t.saveSessionsLocked()

	t.current = nil
	t.paused = false
	t.pauseStart = nil
	t.elapsed = 0
	t.stopTickLocked()
	result := *ended.Clone()
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "end", started, true, err, map[string]any{
		"session_id":       result.ID,
		"duration_seconds": int64(result.Duration(now) / time.Second),
	})
	return result, true
}

// DeleteSession removes the history entry with id. Unknown ids are a no-op
// and trigger no write.
func (t *SessionTimer) DeleteSession(id string) bool {
	started := time.Now()
	t.mu.Lock()
	idx := -1
	for i := range t.sessions {
		if t.sessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		t.observe(context.Background(), "delete_session", started, false, nil, map[string]any{"session_id": id})
		return false
	}

	remaining := make([]domain.Session, 0, len(t.sessions)-1)
	remaining = append(remaining, t.sessions[:idx]...)
	remaining = append(remaining, t.sessions[idx+1:]...)
	t.sessions = remaining
	err := t.saveSessionsLocked()
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "delete_session", started, true, err, map[string]any{"session_id": id})
	return true
}

// ClearAllSessions empties the history and persists the empty list.
func (t *SessionTimer) ClearAllSessions() {
	started := time.Now()
	t.mu.Lock()
	cleared := len(t.sessions)
	t.sessions = nil
	err := t.saveSessionsLocked()
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "clear_sessions", started, true, err, map[string]any{"cleared": cleared})
}

// UpdateHourlyRate sets the rate for sessions started from now on. The
// active session and the history keep their own rates. Invalid rates are
// rejected with domain.ErrInvalidRate and change nothing.
func (t *SessionTimer) UpdateHourlyRate(rate float64) error {
	started := time.Now()
	if err := domain.ValidateHourlyRate(rate); err != nil {
		t.observe(context.Background(), "update_hourly_rate", started, false, err, nil)
		return err
	}

	t.mu.Lock()
	t.rate = rate
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	err := t.store.SaveHourlyRate(ctx, rate)
	cancel()
	if err != nil {
		t.logger.Error("saving hourly rate failed", "error", err, "hourly_rate", rate)
	}
	snap := t.publishLocked()
	t.mu.Unlock()

	t.notify(snap)
	t.observe(context.Background(), "update_hourly_rate", started, true, err, map[string]any{"hourly_rate": rate})
	return nil
}

// Refresh recomputes the elapsed-time cache the way a tick does. No-op
// unless running.
func (t *SessionTimer) Refresh() {
	t.mu.Lock()
	if t.current == nil || t.paused {
		t.mu.Unlock()
		return
	}
	t.elapsed = t.current.Duration(t.now())
	snap := t.publishLocked()
	t.mu.Unlock()
	t.notify(snap)
}

// Snapshot returns a copy of the published state.
func (t *SessionTimer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change,
// including ticks. Callbacks run outside the timer lock and must not block
// for long. The returned func unregisters fn.
func (t *SessionTimer) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	t.subsMu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.subsMu.Lock()
			delete(t.subs, id)
			t.subsMu.Unlock()
		})
	}
}

// Close stops the tick. The current session, if any, is left as is and is
// not persisted. Safe to call more than once.
func (t *SessionTimer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.stopTickLocked()
}

func (t *SessionTimer) state() State {
	switch {
	case t.current == nil:
		return StateIdle
	case t.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (t *SessionTimer) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:     t.version,
		State:       t.state(),
		Sessions:    copySessions(t.sessions),
		IsPaused:    t.current != nil && t.paused,
		IsRunning:   t.current != nil && !t.paused,
		ElapsedTime: t.elapsed,
		HourlyRate:  t.rate,
	}
	if t.current != nil {
		snap.Current = t.current.Clone()
	}
	return snap
}

// publishLocked bumps the version and returns the snapshot to notify with.
func (t *SessionTimer) publishLocked() Snapshot {
	t.version++
	return t.snapshotLocked()
}

func (t *SessionTimer) notify(snap Snapshot) {
	t.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (t *SessionTimer) saveSessionsLocked() error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := t.store.SaveSessions(ctx, copySessions(t.sessions)); err != nil {
		t.logger.Error("saving session history failed", "error", err, "sessions", len(t.sessions))
		return err
	}
	return nil
}

func (t *SessionTimer) observe(ctx context.Context, name string, started time.Time, applied bool, err error, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields["applied"] = applied
	t.observer.ObserveUseCase(ctx, service.UseCaseEvent{
		Name:      "timer." + name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

func dedupeByID(in []domain.Session) []domain.Session {
	seen := make(map[string]bool, len(in))
	out := make([]domain.Session, 0, len(in))
	for _, s := range in {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
