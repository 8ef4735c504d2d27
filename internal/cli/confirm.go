package cli

import (
	"errors"

	"github.com/spf13/pflag"
)

// errNeedsConfirmation is returned when a destructive command runs without
// a terminal to ask on and without --yes.
var errNeedsConfirmation = errors.New("refusing to continue without confirmation; pass --yes")

// addYesFlag registers the shared --yes/-y flag.
func addYesFlag(fs *pflag.FlagSet, yes *bool) {
	fs.BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}

// confirm returns true when --yes was passed or the user agrees. Without a
// terminal it refuses rather than guess.
func confirm(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if app.Confirm != nil {
		return app.Confirm(title)
	}
	if !app.interactive() {
		return false, errNeedsConfirmation
	}
	var ok bool
	if err := wizardConfirm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
