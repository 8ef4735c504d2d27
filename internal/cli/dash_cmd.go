package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Aliases: []string{"dashboard"},
		Short:   "Open the live timer dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(app)
		},
	}
}

func runDashboard(app *App) error {
	if app.RunDashboard != nil {
		return app.RunDashboard(app)
	}
	m := newAppModel(app)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
