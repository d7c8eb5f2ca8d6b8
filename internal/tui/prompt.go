// Package tui holds the small interactive pieces pdnsctl shows on a
// terminal: confirmations before destructive changes, the API key prompt,
// a spinner around slow requests and styled status lines.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels an interactive prompt.
var ErrAborted = errors.New("aborted by user")

func accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// Confirm asks a yes/no question. affirmative labels the yes button.
func Confirm(title, description, affirmative string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&ok)

	if err := runForm(huh.NewGroup(field)); err != nil {
		return false, err
	}
	return ok, nil
}

// PromptAPIKey reads an API key for host without echoing it.
func PromptAPIKey(host string) (string, error) {
	var key string
	field := huh.NewInput().
		Title(fmt.Sprintf("API key for %s", host)).
		Description("The value of api-key in pdns.conf; stored in the OS keychain.").
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("API key cannot be empty")
			}
			return nil
		})

	if err := runForm(huh.NewGroup(field)); err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// WithSpinner runs action while a spinner titled title is shown on stderr.
func WithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(accessible()).
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
