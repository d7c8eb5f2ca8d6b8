package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRecordState(t *testing.T) {
	if got := ansi.Strip(RecordState(true)); got != "disabled" {
		t.Errorf("RecordState(true) = %q, want %q", got, "disabled")
	}
	if got := ansi.Strip(RecordState(false)); got != "active" {
		t.Errorf("RecordState(false) = %q, want %q", got, "active")
	}
}

func TestCheckResult(t *testing.T) {
	if got := ansi.Strip(CheckResult(true)); got != "ok" {
		t.Errorf("CheckResult(true) = %q", got)
	}
	if got := ansi.Strip(CheckResult(false)); got != "failed" {
		t.Errorf("CheckResult(false) = %q", got)
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		label, value, want string
	}{
		{"Kind", "Native", "Kind: Native"},
		{"Masters", "", "Masters: -"},
	}
	for _, tt := range tests {
		got := ansi.Strip(Field(tt.label, tt.value))
		if got != tt.want {
			t.Errorf("Field(%q, %q) = %q, want %q", tt.label, tt.value, got, tt.want)
		}
	}
}

func TestKindStyle_CaseInsensitive(t *testing.T) {
	upper := KindStyle("SLAVE").GetForeground()
	lower := KindStyle("slave").GetForeground()
	if upper != lower {
		t.Errorf("KindStyle foreground differs by case: %v vs %v", upper, lower)
	}
	if strings.Contains(ansi.Strip(KindStyle("Native").Render("Native")), "\x1b") {
		t.Error("ansi.Strip left escape codes behind")
	}
}
