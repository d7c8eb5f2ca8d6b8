package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Title is used for the heading of detail views.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	Value = lipgloss.NewStyle().
		Foreground(White)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// KindStyle colors a zone kind: Native and Master zones are served from
// the local backend, Slave zones are pulled from a primary.
func KindStyle(kind string) lipgloss.Style {
	switch strings.ToLower(kind) {
	case "native", "master":
		return lipgloss.NewStyle().Foreground(Green)
	case "slave":
		return lipgloss.NewStyle().Foreground(Blue)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// RecordState renders "active" or "disabled" for a record.
func RecordState(disabled bool) string {
	if disabled {
		return lipgloss.NewStyle().Foreground(Yellow).Render("disabled")
	}
	return lipgloss.NewStyle().Foreground(Green).Render("active")
}

// CheckResult renders the outcome of a zone check.
func CheckResult(ok bool) string {
	if ok {
		return SuccessText.Render("ok")
	}
	return ErrorText.Render("failed")
}

// Field renders one "Label: value" line of a detail view.
func Field(label, value string) string {
	if value == "" {
		value = MutedText.Render("-")
	} else {
		value = Value.Render(value)
	}
	return Label.Render(label+":") + " " + value
}
