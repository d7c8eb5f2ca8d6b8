package auditlog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "separate value",
			in:   []string{"login", "--api-key", "secret", "--host", "ns1"},
			want: []string{"login", "--api-key", "<redacted>", "--host", "ns1"},
		},
		{
			name: "inline value",
			in:   []string{"set", "--notify-url=discord://token@id"},
			want: []string{"set", "--notify-url=<redacted>"},
		},
		{
			name: "config key",
			in:   []string{"notify-url", "gotify://host/token"},
			want: []string{"notify-url", "<redacted>"},
		},
		{
			name: "trailing flag",
			in:   []string{"create", "--private-key"},
			want: []string{"create", "--private-key", "<redacted>"},
		},
		{
			name: "nothing sensitive",
			in:   []string{"add", "example.com", "www", "A", "192.0.2.1"},
			want: []string{"add", "example.com", "www", "A", "192.0.2.1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SanitizeArgs(tt.in)); diff != "" {
				t.Errorf("SanitizeArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoinArgs_QuotesSpaces(t *testing.T) {
	got := joinArgs([]string{"add", "v=spf1 -all", ""})
	if want := `add "v=spf1 -all" ""`; got != want {
		t.Errorf("joinArgs() = %q, want %q", got, want)
	}
}
