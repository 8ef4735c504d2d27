package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type incMsg struct{}

type counter struct {
	n      int
	width  int
	chains int
}

func (c counter) Init() tea.Cmd { return func() tea.Msg { return incMsg{} } }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case incMsg:
		c.n++
		if c.chains > 0 {
			c.chains--
			return c, tea.Batch(
				func() tea.Msg { return incMsg{} },
				func() tea.Msg { time.Sleep(time.Second); return incMsg{} },
			)
		}
	case tea.KeyMsg:
		if msg.String() == "q" {
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsChainedAndBatchedCmds(t *testing.T) {
	d := New(t, counter{chains: 3}, WithSize(80, 24))
	d.DrainInit()

	m := d.Model.(counter)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 4, m.n, "blocking cmds are abandoned")
	assert.Equal(t, 4, d.Count(incMsg{}))
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.Send(incMsg{})
	assert.Zero(t, d.Model.(counter).n)
}
