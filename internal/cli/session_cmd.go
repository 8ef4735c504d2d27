package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/alexanderramin/clockwork/internal/timer"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Browse, export and delete past sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
		newSessionClearCmd(app),
		newSessionExportCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions := app.Timer.Snapshot().Sessions
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}
			out := formatter.FormatSessionTable(sessions, app.now())
			if len(sessions) > 0 {
				out = formatter.RenderBox("Sessions", strings.TrimRight(out, "\n")) + "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many sessions (0 = all)")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete one session by ID or unique ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSession(app.Timer.Snapshot(), args[0])
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Delete session %s (%s)?",
				domain.FormatTimeRange(&s), domain.FormatMoney(s.Earnings(app.now())))
			ok, err := confirm(app, yes, title)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if !app.Timer.DeleteSession(s.ID) {
				return fmt.Errorf("session %s: not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", formatter.ShortID(s.ID))
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)

	return cmd
}

func newSessionClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every past session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(app.Timer.Snapshot().Sessions)
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions to clear.")
				return nil
			}

			ok, err := confirm(app, yes, fmt.Sprintf("Delete all %d sessions?", n))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			app.Timer.ClearAllSessions()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d sessions\n", n)
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)

	return cmd
}

func newSessionExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the session history as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Timer.Snapshot()
			doc := service.BuildExport(snap.Sessions, snap.HourlyRate, app.now())

			var w io.Writer = cmd.OutOrStdout()
			toFile := outPath != "" && outPath != "-"
			if toFile {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := service.WriteExport(w, doc); err != nil {
				return err
			}
			if toFile {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", len(doc.Sessions), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

// resolveSession finds a history entry by full ID or unique prefix.
func resolveSession(snap timer.Snapshot, ref string) (domain.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Session{}, fmt.Errorf("session ID is required")
	}
	if s, ok := snap.FindSession(ref); ok {
		return s, nil
	}

	var matches []domain.Session
	for _, s := range snap.Sessions {
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Session{}, fmt.Errorf("session %s: not found", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Session{}, fmt.Errorf("session prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
