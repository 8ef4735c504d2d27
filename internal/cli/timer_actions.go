package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Timer operations run inside tea.Cmds so a slow save never blocks the
// render loop. Each returns the resulting snapshot with an optional notice.

func startCmd(tm SessionTimer) tea.Cmd {
	return func() tea.Msg {
		if !tm.Start() {
			return snapshotMsg{snap: tm.Snapshot()}
		}
		return snapshotMsg{snap: tm.Snapshot(), flash: "Session started."}
	}
}

// togglePauseCmd pauses a running session or resumes a paused one.
func togglePauseCmd(tm SessionTimer) tea.Cmd {
	return func() tea.Msg {
		snap := tm.Snapshot()
		switch {
		case snap.IsRunning:
			if tm.Pause() {
				return snapshotMsg{snap: tm.Snapshot(), flash: "Paused."}
			}
		case snap.IsPaused:
			if tm.Resume() {
				return snapshotMsg{snap: tm.Snapshot(), flash: "Resumed."}
			}
		}
		return snapshotMsg{snap: tm.Snapshot()}
	}
}

func endCmd(tm SessionTimer) tea.Cmd {
	return func() tea.Msg {
		ended, ok := tm.End()
		if !ok {
			return snapshotMsg{snap: tm.Snapshot()}
		}
		d := ended.Duration(*ended.EndTime)
		return snapshotMsg{
			snap: tm.Snapshot(),
			flash: fmt.Sprintf("Ended %s · %s", domain.FormatClock(d),
				domain.FormatMoney(ended.Earnings(*ended.EndTime))),
		}
	}
}

func deleteSessionCmd(tm SessionTimer, id string) tea.Cmd {
	return func() tea.Msg {
		if !tm.DeleteSession(id) {
			return snapshotMsg{snap: tm.Snapshot(), flash: "Session already gone."}
		}
		return snapshotMsg{snap: tm.Snapshot(), flash: "Session deleted."}
	}
}

func clearSessionsCmd(tm SessionTimer) tea.Cmd {
	return func() tea.Msg {
		tm.ClearAllSessions()
		return snapshotMsg{snap: tm.Snapshot(), flash: "History cleared."}
	}
}

// updateRateCmd parses text and applies it as the new default rate.
func updateRateCmd(tm SessionTimer, text string) tea.Cmd {
	return func() tea.Msg {
		rate, err := domain.ParseHourlyRate(text)
		if err == nil {
			err = tm.UpdateHourlyRate(rate)
		}
		if err != nil {
			return snapshotMsg{snap: tm.Snapshot(), flash: "Rate not changed: " + err.Error()}
		}
		return snapshotMsg{snap: tm.Snapshot(), flash: "Rate set to " + domain.FormatRate(rate) + "."}
	}
}
