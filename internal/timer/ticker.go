package timer

import (
	"context"
	"time"
)

// startTickLocked replaces any running ticker with a fresh one. Only one
// tick goroutine is live at a time; a superseded goroutine may still fire
// once but its generation no longer matches and the tick is dropped.
func (t *SessionTimer) startTickLocked() {
	t.stopTickLocked()
	if t.closed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.tickCancel = cancel
	go t.runTicker(ctx, t.tickGen, t.interval)
}

func (t *SessionTimer) stopTickLocked() {
	if t.tickCancel != nil {
		t.tickCancel()
		t.tickCancel = nil
	}
	t.tickGen++
}

func (t *SessionTimer) runTicker(ctx context.Context, gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(gen)
		}
	}
}

func (t *SessionTimer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.tickGen || t.current == nil || t.paused {
		t.mu.Unlock()
		return
	}
	t.elapsed = t.current.Duration(t.now())
	snap := t.publishLocked()
	t.mu.Unlock()
	t.notify(snap)
}
