package cmd

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/config"
	"nathanbeddoewebdev/pdnsctl/internal/database"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"
	"nathanbeddoewebdev/pdnsctl/internal/services/auth"

	"github.com/google/go-cmp/cmp"
)

func setup(t *testing.T) *pdnstest.Server {
	t.Helper()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "pdnsctl.db"))
	t.Cleanup(database.ResetPath)

	fake := pdnstest.New(t, pdnstest.WithZone(pdnstest.ExampleZone("example.com.")))
	t.Setenv(cmdutil.EnvHost, fake.Host())
	t.Setenv(cmdutil.EnvPort, strconv.Itoa(int(fake.Port())))
	t.Setenv(cmdutil.EnvScheme, "")
	t.Setenv(cmdutil.EnvAPIVersion, "")
	t.Setenv(cmdutil.EnvServer, "")
	t.Setenv(cmdutil.EnvLogLevel, "")
	t.Setenv(auth.EnvAPIKey, fake.APIKey())
	return fake
}

func auditEntries(t *testing.T) []auditlog.AuditEntry {
	t.Helper()
	repo, err := auditlog.Open()
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(auditlog.Filter{Limit: 10})
	if err != nil {
		t.Fatalf("list audit log: %v", err)
	}
	return entries
}

func TestRun_AuditsChanges(t *testing.T) {
	setup(t)

	var out bytes.Buffer
	if err := run([]string{"record", "add", "example.com", "www", "A", "192.0.2.1"}, &out, &out); err != nil {
		t.Fatalf("run error = %v\n%s", err, out.String())
	}

	entries := auditEntries(t)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	got := []string{e.Command, e.ResourceType, e.ResourceID, e.Outcome}
	want := []string{"pdnsctl record add", auditlog.ResourceRRset, "www/A", auditlog.OutcomeSuccess}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("audit entry mismatch (-want +got):\n%s", diff)
	}
	if e.Server == "" {
		t.Error("audit entry should name the server")
	}
}

func TestRun_AuditsFailures(t *testing.T) {
	setup(t)

	var out bytes.Buffer
	if err := run([]string{"record", "delete", "missing.example", "www", "A"}, &out, &out); err == nil {
		t.Fatal("expected error for unknown zone, got nil")
	}

	entries := auditEntries(t)
	if len(entries) != 1 || entries[0].Outcome != auditlog.OutcomeError || entries[0].Detail == "" {
		t.Errorf("unexpected audit entries: %+v", entries)
	}
}

func TestRun_ReadsAreNotAudited(t *testing.T) {
	setup(t)

	var out bytes.Buffer
	if err := run([]string{"zone", "list"}, &out, &out); err != nil {
		t.Fatalf("run error = %v\n%s", err, out.String())
	}
	if entries := auditEntries(t); len(entries) != 0 {
		t.Errorf("expected no audit entries, got %+v", entries)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		meta auditlog.Metadata
		want string
	}{
		{
			name: "full",
			meta: auditlog.Metadata{Server: "pdns/localhost", ResourceType: "rrset", ResourceID: "www.example.com./A", ResourceName: "example.com"},
			want: "pdnsctl record add: rrset www.example.com./A in example.com on pdns/localhost",
		},
		{
			name: "type only",
			meta: auditlog.Metadata{ResourceType: "config"},
			want: "pdnsctl record add: config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := message("pdnsctl record add", tt.meta); got != tt.want {
				t.Errorf("message() = %q, want %q", got, tt.want)
			}
		})
	}
}
