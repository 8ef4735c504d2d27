package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// App holds what CLI commands and the dashboard need.
type App struct {
	Timer SessionTimer

	// Now defaults to time.Now. Tests pin it.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. When nil the app
	// is treated as non-interactive.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh confirm prompt.
	Confirm func(title string) (bool, error)

	// RunDashboard runs the TUI. Defaults to a full-screen bubbletea program.
	RunDashboard func(app *App) error
}

// NewRootCmd creates the top-level "clockwork" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "clockwork",
		Short:         "Track work sessions and what they earn",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newDashCmd(app),
		newSessionCmd(app),
		newRateCmd(app),
		newStatusCmd(app),
	)

	return root
}
