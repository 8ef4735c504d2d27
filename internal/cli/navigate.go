package cli

import (
	"github.com/alexanderramin/clockwork/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// snapshotMsg delivers timer state to the model. fromFeed marks snapshots
// read from the subscription, which must re-arm the listener.
type snapshotMsg struct {
	snap     timer.Snapshot
	flash    string
	fromFeed bool
}

// flashMsg shows a one-line notice until the next key press.
type flashMsg struct {
	text string
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}
