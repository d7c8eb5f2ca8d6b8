package record

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdtest"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"
	"nathanbeddoewebdev/pdnsctl/internal/plan"

	"github.com/google/go-cmp/cmp"
)

func execRecord(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return cmdtest.Exec(t, NewCommand(), args...)
}

func assertContainsAll(t *testing.T, output string, expected ...string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func rrsetOf(t *testing.T, fake *pdnstest.Server, name, rrtype string) (domain.RRset, bool) {
	t.Helper()
	return fake.RRset(cmdtest.Zone, name, rrtype)
}

func patches(fake *pdnstest.Server) int {
	n := 0
	for _, r := range fake.Requests() {
		if r.Method == "PATCH" {
			n++
		}
	}
	return n
}

func TestList(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execRecord(t, "list", "example.com")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	assertContainsAll(t, stdout, "NAME", "CONTENT", "www.example.com.", "127.0.0.1", "ns2.example.net.", "active")
}

func TestList_Filter(t *testing.T) {
	cmdtest.Setup(t)

	stdout, _, err := execRecord(t, "list", "example.com", "--name", "www", "--type", "a", "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var rrsets []domain.RRset
	if err := json.Unmarshal([]byte(stdout), &rrsets); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rrsets) != 1 || rrsets[0].Name != "www.example.com." {
		t.Errorf("unexpected rrsets: %+v", rrsets)
	}
}

func TestAdd(t *testing.T) {
	fake := cmdtest.Setup(t)

	stdout, _, err := execRecord(t, "add", "example.com", "www", "A", "192.0.2.1", "127.0.0.1")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}
	assertContainsAll(t, stdout, "Added 2 record(s) to www A in example.com")

	r, _ := rrsetOf(t, fake, "www.example.com.", "A")
	if diff := cmp.Diff([]string{"127.0.0.1", "192.0.2.1"}, r.Contents()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if r.TTL != 300 {
		t.Errorf("TTL = %d, existing TTL should be kept", r.TTL)
	}
}

func TestAdd_NewRRsetDefaultTTL(t *testing.T) {
	fake := cmdtest.Setup(t)

	if _, _, err := execRecord(t, "add", "example.com", "@", "TXT", "hello world"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	r, ok := rrsetOf(t, fake, cmdtest.Zone, "TXT")
	if !ok {
		t.Fatal("TXT RRset not created")
	}
	if diff := cmp.Diff([]string{`"hello world"`}, r.Contents()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if r.TTL != 3600 {
		t.Errorf("TTL = %d, want 3600", r.TTL)
	}
}

func TestAdd_InvalidContent(t *testing.T) {
	fake := cmdtest.Setup(t)

	_, _, err := execRecord(t, "add", "example.com", "www", "A", "not-an-ip")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if n := patches(fake); n != 0 {
		t.Errorf("sent %d PATCH requests for invalid input", n)
	}
}

func TestReplaceAndRemove(t *testing.T) {
	fake := cmdtest.Setup(t)

	if _, _, err := execRecord(t, "replace", "example.com", "www", "A", "192.0.2.1", "192.0.2.2", "--ttl", "60"); err != nil {
		t.Fatalf("replace error = %v", err)
	}
	r, _ := rrsetOf(t, fake, "www.example.com.", "A")
	if diff := cmp.Diff([]string{"192.0.2.1", "192.0.2.2"}, r.Contents()); diff != "" {
		t.Errorf("contents after replace (-want +got):\n%s", diff)
	}
	if r.TTL != 60 {
		t.Errorf("TTL = %d, want 60", r.TTL)
	}

	stdout, _, err := execRecord(t, "remove", "example.com", "www", "A", "192.0.2.1")
	if err != nil {
		t.Fatalf("remove error = %v", err)
	}
	assertContainsAll(t, stdout, "Removed 1 record(s) from www A")
	r, _ = rrsetOf(t, fake, "www.example.com.", "A")
	if diff := cmp.Diff([]string{"192.0.2.2"}, r.Contents()); diff != "" {
		t.Errorf("contents after remove (-want +got):\n%s", diff)
	}
}

func TestReplace_NegativeTTL(t *testing.T) {
	cmdtest.Setup(t)

	_, _, err := execRecord(t, "replace", "example.com", "www", "A", "192.0.2.1", "--ttl", "-1")
	if err == nil || !strings.Contains(err.Error(), "--ttl") {
		t.Errorf("expected --ttl error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	fake := cmdtest.Setup(t)

	stdout, _, err := execRecord(t, "delete", "example.com", "mail", "mx")
	if err != nil {
		t.Fatalf("delete error = %v", err)
	}
	assertContainsAll(t, stdout, "Deleted mail MX from example.com")
	if _, ok := rrsetOf(t, fake, "mail.example.com.", "MX"); ok {
		t.Error("MX RRset still present")
	}
}

func TestUpdate(t *testing.T) {
	fake := cmdtest.Setup(t)

	if _, _, err := execRecord(t, "update", "example.com", "www", "A", "127.0.0.1", "192.0.2.10"); err != nil {
		t.Fatalf("update error = %v", err)
	}
	r, _ := rrsetOf(t, fake, "www.example.com.", "A")
	if diff := cmp.Diff([]string{"192.0.2.10"}, r.Contents()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if n := patches(fake); n != 1 {
		t.Errorf("update sent %d PATCH requests, want 1", n)
	}
}

func TestRecord_Legacy(t *testing.T) {
	fake := cmdtest.Setup(t, pdnstest.WithVersion(0), pdnstest.WithZone(pdnstest.ExampleZone("example.org")))

	if _, _, err := execRecord(t, "add", "example.org", "ftp", "CNAME", "www.example.org"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	r, ok := fake.RRset("example.org", "ftp.example.org", "CNAME")
	if !ok {
		t.Fatal("CNAME not created in legacy zone")
	}
	if diff := cmp.Diff([]string{"www.example.org."}, r.Contents()); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func TestApply(t *testing.T) {
	fake := cmdtest.Setup(t)
	path := writePlan(t, `zone: example.com.
changes:
  - op: add
    name: www
    type: A
    records: [192.0.2.1]
  - op: replace
    name: "@"
    type: TXT
    ttl: 600
    records: ["v=spf1 -all"]
  - op: delete
    name: mail
    type: MX
`)

	stdout, _, err := execRecord(t, "apply", "-f", path)
	if err != nil {
		t.Fatalf("apply error = %v", err)
	}
	assertContainsAll(t, stdout, "REPLACE", "DELETE", "Applied 3 change(s) to example.com.")

	if n := patches(fake); n != 1 {
		t.Errorf("apply sent %d PATCH requests, want 1", n)
	}
	if r, _ := rrsetOf(t, fake, "www.example.com.", "A"); len(r.Records) != 2 {
		t.Errorf("www A = %v, want 2 records", r.Contents())
	}
	if _, ok := rrsetOf(t, fake, "mail.example.com.", "MX"); ok {
		t.Error("MX RRset still present")
	}
}

func TestApply_DryRun(t *testing.T) {
	fake := cmdtest.Setup(t)
	path := writePlan(t, "zone: example.com\nchanges: [{op: delete, name: www, type: a}]\n")

	stdout, _, err := execRecord(t, "apply", "-f", path, "--dry-run")
	if err != nil {
		t.Fatalf("apply error = %v", err)
	}
	assertContainsAll(t, stdout, "delete", "www", "A", "nothing sent")
	if len(fake.Requests()) != 0 {
		t.Errorf("dry run sent %d requests", len(fake.Requests()))
	}
}

func TestApply_InvalidPlan(t *testing.T) {
	cmdtest.Setup(t)
	path := writePlan(t, "zone: example.com\nchanges: [{op: upsert, name: www, type: A, records: [x]}]\n")

	_, _, err := execRecord(t, "apply", "-f", path)
	if !errors.Is(err, plan.ErrInvalid) {
		t.Errorf("expected plan.ErrInvalid, got %v", err)
	}
}

func TestApply_MissingFile(t *testing.T) {
	cmdtest.Setup(t)

	_, _, err := execRecord(t, "apply")
	if err == nil || !strings.Contains(err.Error(), "--file is required") {
		t.Errorf("expected --file error, got %v", err)
	}
}
