package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/spf13/cobra"
)

func newRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show or change the hourly rate for new sessions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the hourly rate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Hourly rate: %s\n", domain.FormatRate(app.Timer.Snapshot().HourlyRate))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set VALUE",
			Short: "Set the hourly rate, e.g. 75 or $82.50",
			Long: "Set the hourly rate used by sessions started from now on.\n" +
				"The running session and past sessions keep the rate they started with.",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rate, err := domain.ParseHourlyRate(args[0])
				if err != nil {
					return err
				}
				if err := app.Timer.UpdateHourlyRate(rate); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Hourly rate set to %s\n", domain.FormatRate(rate))
				return nil
			},
		},
	)

	return cmd
}
