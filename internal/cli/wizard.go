package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// clockworkHuhTheme returns a custom huh theme using the Gruvbox palette.
func clockworkHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardConfirm creates a yes/no form. Used by the dashboard and, run
// standalone, by CLI commands that need confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(clockworkHuhTheme()).WithShowHelp(false)
}

// wizardRate creates the hourly-rate input, prefilled with current.
func wizardRate(current float64, result *string) *huh.Form {
	*result = fmt.Sprintf("%g", current)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hourly rate").
				Description("Applies to sessions started from now on.").
				Prompt("$ ").
				Value(result).
				Validate(func(s string) error {
					_, err := domain.ParseHourlyRate(s)
					return err
				}),
		),
	).WithTheme(clockworkHuhTheme()).WithShowHelp(false)
}
