package cli

import (
	"sync"

	"github.com/alexanderramin/clockwork/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// snapshotFeed bridges timer callbacks into the bubbletea loop. It keeps at
// most one pending snapshot; a newer one replaces it.
type snapshotFeed struct {
	ch          chan timer.Snapshot
	unsubscribe func()
	once        sync.Once
	mu          sync.Mutex
	closed      bool
}

func newSnapshotFeed(tm SessionTimer) *snapshotFeed {
	f := &snapshotFeed{ch: make(chan timer.Snapshot, 1)}
	f.unsubscribe = tm.Subscribe(f.push)
	return f
}

func (f *snapshotFeed) push(snap timer.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- snap:
		return
	default:
	}
	select {
	case <-f.ch:
	default:
	}
	select {
	case f.ch <- snap:
	default:
	}
}

// wait returns a Cmd that blocks until the next snapshot.
func (f *snapshotFeed) wait() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-f.ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap, fromFeed: true}
	}
}

func (f *snapshotFeed) close() {
	f.once.Do(func() {
		f.unsubscribe()
		f.mu.Lock()
		f.closed = true
		close(f.ch)
		f.mu.Unlock()
	})
}
