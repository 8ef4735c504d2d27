package cli

import (
	"strings"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const quitWarning = "A session is still open. Press e to end and save it, or q again to quit and discard it."

// appModel is the root bubbletea Model for the dashboard. It manages a
// view stack and renders the header, flash line and key help around it.
type appModel struct {
	state     *SharedState
	viewStack []View
	help      help.Model
	feed      *snapshotFeed

	flash     string
	quitArmed bool
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:  app,
		Snap: app.Timer.Snapshot(),
	}
	h := help.New()
	h.Styles.ShortKey = formatter.StyleDim.Bold(true)
	h.Styles.ShortDesc = formatter.StyleDim
	h.Styles.ShortSeparator = formatter.StyleDim

	return appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
		help:      h,
		feed:      newSnapshotFeed(app.Timer),
	}
}

// Close detaches the model from the timer.
func (m appModel) Close() {
	m.feed.close()
}

// activeView returns the top view on the stack, or nil.
func (m appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.feed.wait()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		var next tea.Cmd
		if msg.fromFeed {
			next = m.feed.wait()
		}
		if msg.flash != "" {
			m.flash = msg.flash
		}
		if !m.state.applySnapshot(msg.snap) {
			return m, next
		}
		if m.state.Snap.Current == nil {
			m.quitArmed = false
		}
		// Every view in the stack sees state changes, not just the top.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(append(cmds, next)...)

	case flashMsg:
		m.flash = msg.text
		return m, nil

	case pushViewMsg:
		m.flash = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case wizardCompleteMsg:
		// Pop the wizard and run its follow-up in one step.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd
	}

	return m.forward(msg)
}

func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms take every key, including q.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		return m.forward(msg)
	}

	m.flash = ""
	if msg.String() == "q" {
		if m.state.Snap.Current != nil && !m.quitArmed {
			m.quitArmed = true
			m.flash = quitWarning
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	m.quitArmed = false

	return m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	result := strings.Join(sections, "\n")

	footer := m.renderFooter()

	// Pad so the footer sits on the last rows in alt-screen mode.
	if m.state.Height > 0 {
		used := strings.Count(result, "\n") + 1 + strings.Count(footer, "\n") + 1
		if used < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-used)
		}
	}
	return result + "\n" + footer
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("clockwork")
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderFooter() string {
	flashLine := ""
	if m.flash != "" {
		style := formatter.StyleBlue
		if m.quitArmed {
			style = formatter.StyleYellow
		}
		flashLine = style.Render(m.flash)
	}

	hints := ""
	if v := m.activeView(); v != nil {
		hints = m.help.ShortHelpView(v.ShortHelp())
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return flashLine + "\n" + sep + "\n" + hints
}
