package server

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdtest"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"

	"github.com/google/go-cmp/cmp"
)

func execServer(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return cmdtest.Exec(t, NewCommand(), args...)
}

// assertContainsAll verifies that output contains every expected substring.
func assertContainsAll(t *testing.T, output string, expected ...string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestList(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execServer(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	assertContainsAll(t, stdout, "ID", "DAEMON", "--", "localhost", "authoritative")
}

func TestList_JSON(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execServer(t, "list", "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var servers []domain.Server
	if err := json.Unmarshal([]byte(stdout), &servers); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(servers) != 1 || servers[0].ID != pdnstest.ServerID {
		t.Errorf("unexpected servers: %+v", servers)
	}
}

func TestShow_UnknownServer(t *testing.T) {
	cmdtest.Setup(t)

	_, stderr, err := execServer(t, "show", "--server", "other")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("expected error on stderr, got %q", stderr)
	}
}

func TestStats_Filter(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execServer(t, "stats", "--filter", "udp")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	assertContainsAll(t, stdout, "udp-queries", "17")
	if strings.Contains(stdout, "uptime") {
		t.Errorf("filter should drop uptime:\n%s", stdout)
	}
}

func TestFlushCache(t *testing.T) {
	fake := cmdtest.Setup(t)

	stdout, _, err := execServer(t, "flush-cache", "example.com")
	if err != nil {
		t.Fatalf("flush-cache error = %v", err)
	}
	assertContainsAll(t, stdout, "Flushed 1 cache entries for example.com.")
	if diff := cmp.Diff([]string{"example.com."}, fake.Flushed()); diff != "" {
		t.Errorf("flushed mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execServer(t, "search", "127.0.0", "--type", "record")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	assertContainsAll(t, stdout, "record", "www.example.com.", "A", "127.0.0.1", "active")
}

func TestSearch_InvalidType(t *testing.T) {
	cmdtest.Setup(t)

	_, _, err := execServer(t, "search", "x", "--type", "rrset")
	if err == nil || !strings.Contains(err.Error(), "--type") {
		t.Errorf("expected --type error, got %v", err)
	}
}

func TestSearchLog(t *testing.T) {
	cmdtest.Setup(t, pdnstest.WithLogLines("Jan 1 zone example.com. notified", "Jan 1 startup"))

	stdout, _, err := execServer(t, "search-log", "example.com")
	if err != nil {
		t.Fatalf("search-log error = %v", err)
	}
	if strings.TrimSpace(stdout) != "Jan 1 zone example.com. notified" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestAPIVersion(t *testing.T) {
	tests := []struct {
		name    string
		version int
		want    string
	}{
		{"v1", 1, "API schema version 1"},
		{"legacy", 0, "API schema version 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdtest.Setup(t, pdnstest.WithVersion(tt.version))

			stdout, _, err := execServer(t, "api-version")
			if err != nil {
				t.Fatalf("api-version error = %v", err)
			}
			assertContainsAll(t, stdout, tt.want)
		})
	}
}

func TestAPIVersion_Pinned(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execServer(t, "api-version", "--api-version", "0")
	if err != nil {
		t.Fatalf("api-version error = %v", err)
	}
	assertContainsAll(t, stdout, "API schema version 0")
}

func TestConfig_SetAndGet(t *testing.T) {
	cmdtest.Setup(t)

	if _, _, err := execServer(t, "config", "set", "allow-axfr-ips", "192.0.2.0/24"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	stdout, _, err := execServer(t, "config", "get", "allow-axfr-ips")
	if err != nil {
		t.Fatalf("config get error = %v", err)
	}
	if strings.TrimSpace(stdout) != "192.0.2.0/24" {
		t.Errorf("unexpected value %q", stdout)
	}

	stdout, _, err = execServer(t, "config", "list")
	if err != nil {
		t.Fatalf("config list error = %v", err)
	}
	assertContainsAll(t, stdout, "allow-axfr-ips", "192.0.2.0/24", "default-ttl", "3600")
}

func TestConfig_SetRecordsAuditMetadata(t *testing.T) {
	cmdtest.Setup(t)

	cmd := NewCommand()
	if _, _, err := cmdtest.Exec(t, cmd, "config", "set", "allow-axfr-ips", "192.0.2.0/24"); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	var set = cmd
	for _, path := range []string{"config", "set"} {
		found, _, err := set.Find([]string{path})
		if err != nil {
			t.Fatalf("find %s: %v", path, err)
		}
		set = found
	}
	meta := auditlog.MetadataFromContext(set.Context())
	want := auditlog.Metadata{Server: "localhost", ResourceType: auditlog.ResourceConfig, ResourceID: "allow-axfr-ips"}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestOverrides(t *testing.T) {
	fake := cmdtest.Setup(t, pdnstest.WithOverride(domain.Override{
		Override: "ignore",
		Domain:   "blocked.example.",
		Reason:   "abuse",
	}))

	stdout, _, err := execServer(t, "override", "list")
	if err != nil {
		t.Fatalf("override list error = %v", err)
	}
	assertContainsAll(t, stdout, "1", "blocked.example.", "ignore")

	stdout, _, err = execServer(t, "override", "show", "1")
	if err != nil {
		t.Fatalf("override show error = %v", err)
	}
	assertContainsAll(t, stdout, "Override 1", "Reason: abuse")

	stdout, _, err = execServer(t, "override", "create", "www.example.com", "--type", "a", "--value", "192.0.2.10")
	if err != nil {
		t.Fatalf("override create error = %v", err)
	}
	assertContainsAll(t, stdout, "Created override 2 for www.example.com.")
	if o, ok := fake.Override(2); !ok || o.RRType != "A" || o.Override != "replace" {
		t.Errorf("stored override = %+v, %v", o, ok)
	}

	if _, _, err := execServer(t, "override", "delete", "1"); err != nil {
		t.Fatalf("override delete error = %v", err)
	}
	if _, ok := fake.Override(1); ok {
		t.Error("override 1 still present after delete")
	}

	if _, _, err := execServer(t, "override", "show", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
