package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const hourBarWidth = 24

// dashboardView is the home screen: the live session on top, the history
// below with a selection cursor.
type dashboardView struct {
	state  *SharedState
	keys   dashboardKeyMap
	cursor int
	offset int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state: state,
		keys:  newDashboardKeyMap(),
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	snap := v.state.Snap
	return v.keys.shortHelp(snap.Current != nil, snap.IsPaused, len(snap.Sessions) > 0)
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		v.clampCursor()
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tm := v.state.App.Timer
	snap := v.state.Snap

	switch {
	case key.Matches(msg, v.keys.Start):
		return v, startCmd(tm)
	case key.Matches(msg, v.keys.Toggle):
		return v, togglePauseCmd(tm)
	case key.Matches(msg, v.keys.End):
		return v, endCmd(tm)

	case key.Matches(msg, v.keys.Rate):
		var text string
		form := wizardRate(snap.HourlyRate, &text)
		return v, startWizardCmd("Hourly rate", form, func() tea.Cmd {
			return updateRateCmd(tm, text)
		})

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(snap.Sessions)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		s, ok := v.selected()
		if !ok {
			return v, nil
		}
		id := s.ID
		var yes bool
		title := fmt.Sprintf("Delete session %s (%s)?",
			domain.FormatTimeRange(&s), domain.FormatMoney(s.Earnings(v.state.App.now())))
		return v, startWizardCmd("Delete", wizardConfirm(title, &yes), func() tea.Cmd {
			if !yes {
				return flash("Kept.")
			}
			return deleteSessionCmd(tm, id)
		})

	case key.Matches(msg, v.keys.Clear):
		n := len(snap.Sessions)
		if n == 0 {
			return v, nil
		}
		var yes bool
		title := fmt.Sprintf("Delete all %d sessions? This cannot be undone.", n)
		return v, startWizardCmd("Clear history", wizardConfirm(title, &yes), func() tea.Cmd {
			if !yes {
				return flash("Kept.")
			}
			return clearSessionsCmd(tm)
		})
	}
	return v, nil
}

func (v *dashboardView) selected() (domain.Session, bool) {
	sessions := v.state.Snap.Sessions
	if v.cursor < 0 || v.cursor >= len(sessions) {
		return domain.Session{}, false
	}
	return sessions[v.cursor], true
}

func (v *dashboardView) clampCursor() {
	n := len(v.state.Snap.Sessions)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	current := v.renderCurrent()
	used := lipgloss.Height(current) + 1
	history := v.renderHistory(v.state.ContentHeight() - used)
	return current + "\n" + history
}

func (v *dashboardView) renderCurrent() string {
	snap := v.state.Snap
	var b strings.Builder

	b.WriteString(formatter.FormatStatusLine(snap))
	b.WriteString("\n\n")

	if snap.Current == nil {
		b.WriteString("  " + formatter.Dim("Press s to start a session at "+domain.FormatRate(snap.HourlyRate)+".") + "\n")
		return b.String()
	}

	cur := snap.Current
	clock := formatter.StateColor(snap.State).Bold(true).Render(domain.FormatClock(snap.ElapsedTime))
	b.WriteString("  " + clock + "   " + formatter.Money(snap.CurrentEarnings()) +
		formatter.Dim(" at "+domain.FormatRate(cur.HourlyRate)) + "\n")
	b.WriteString("  " + formatter.RenderHourProgress(snap.ElapsedTime, hourBarWidth) + "\n")

	meta := "started " + domain.FormatShortTime(cur.StartTime)
	if cur.TotalPaused > 0 {
		meta += " · paused " + domain.FormatClock(cur.TotalPaused)
	}
	if cur.HourlyRate != snap.HourlyRate {
		meta += " · next session " + domain.FormatRate(snap.HourlyRate)
	}
	b.WriteString("  " + formatter.Dim(meta) + "\n")
	return b.String()
}

func (v *dashboardView) renderHistory(height int) string {
	sessions := v.state.Snap.Sessions
	var b strings.Builder
	b.WriteString(formatter.Header("History"))
	b.WriteString("\n")

	if len(sessions) == 0 {
		b.WriteString(formatter.Dim("No sessions yet."))
		return b.String()
	}

	// Header (2) and totals (2) lines are fixed.
	rows := max(height-4, 1)
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
	end := min(v.offset+rows, len(sessions))

	now := v.state.App.now()
	for i := v.offset; i < end; i++ {
		s := &sessions[i]
		d := s.Duration(now)
		line := fmt.Sprintf("%-22s %s  %s", domain.FormatTimeRange(s), domain.FormatClock(d), domain.FormatMoney(s.Earnings(now)))
		if i == v.cursor {
			b.WriteString(formatter.StyleHeader.Render("▸ ") + formatter.Bold(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	sum := service.Summarize(sessions, now)
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%d sessions · %s · ", sum.Count, domain.FormatClock(sum.TotalDuration))) +
		formatter.Money(sum.TotalEarnings))
	return b.String()
}
