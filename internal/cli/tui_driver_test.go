package cli

import (
	"regexp"
	"testing"

	"github.com/alexanderramin/clockwork/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sizes the terminal and drains
// Init. The subscription listener blocks and is abandoned by the driver, so
// tests observe state through the snapshots that actions return.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	t.Cleanup(m.Close)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Flash returns the current notice line.
func (d *TestDriver) Flash() string {
	return d.appModel().flash
}

// IsQuitting reports whether the model asked to quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Dashboard returns the home view.
func (d *TestDriver) Dashboard() *dashboardView {
	return d.appModel().viewStack[0].(*dashboardView)
}

// Wizard returns the top view as a wizard, or nil.
func (d *TestDriver) Wizard() *wizardView {
	w, _ := d.appModel().activeView().(*wizardView)
	return w
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// PlainView returns the rendered screen without ANSI styling.
func (d *TestDriver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.View(), "")
}
