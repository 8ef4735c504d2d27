package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show totals over the session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Timer.Refresh()
			snap := app.Timer.Snapshot()
			sum := service.Summarize(snap.Sessions, app.now())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(sum, snap))
			return nil
		},
	}
}
