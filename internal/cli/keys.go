package cli

import "github.com/charmbracelet/bubbles/key"

type dashboardKeyMap struct {
	Start  key.Binding
	Toggle key.Binding
	End    key.Binding
	Rate   key.Binding
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Toggle: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause/resume")),
		End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
		Rate:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rate")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Clear:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// shortHelp adapts the visible bindings to the timer state.
func (k dashboardKeyMap) shortHelp(active, paused, hasHistory bool) []key.Binding {
	var out []key.Binding
	switch {
	case !active:
		out = append(out, k.Start)
	case paused:
		out = append(out, withHelpDesc(k.Toggle, "resume"), k.End)
	default:
		out = append(out, withHelpDesc(k.Toggle, "pause"), k.End)
	}
	out = append(out, k.Rate)
	if hasHistory {
		out = append(out, k.Delete, k.Clear)
	}
	return append(out, k.Quit)
}

func withHelpDesc(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
