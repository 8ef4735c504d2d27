package cli

import "github.com/alexanderramin/clockwork/internal/timer"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Snap is the newest timer snapshot seen by the dashboard.
	Snap timer.Snapshot

	// Terminal dimensions
	Width  int
	Height int
}

// applySnapshot keeps snap unless an older version arrives late.
func (s *SharedState) applySnapshot(snap timer.Snapshot) bool {
	if snap.Version < s.Snap.Version {
		return false
	}
	s.Snap = snap
	return true
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// flash line (1 line), and status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
