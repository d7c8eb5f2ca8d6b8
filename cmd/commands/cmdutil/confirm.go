package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/internal/tui"
)

// ErrNotConfirmed is returned when a destructive command was not confirmed.
var ErrNotConfirmed = errors.New("operation cancelled")

// AddYesFlag registers --yes on a destructive command.
func AddYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// Confirm returns nil when --yes was given or the user accepted the prompt.
// Without a terminal a missing --yes is an error.
func Confirm(cmd *cobra.Command, title, description string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return nil
	}
	if !tui.IsInteractive() {
		return fmt.Errorf("%w: pass --yes to confirm without a terminal", ErrNotConfirmed)
	}

	ok, err := tui.Confirm(title, description, "Yes, continue")
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return ErrNotConfirmed
		}
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}

// Run calls action, behind a spinner when stdout is a terminal.
func Run(cmd *cobra.Command, title string, action func(ctx context.Context) error) error {
	if !tui.IsInteractive() {
		return action(cmd.Context())
	}
	return tui.WithSpinner(cmd.Context(), title, action)
}
