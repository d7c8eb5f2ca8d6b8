package pdns

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/rrset"

	"github.com/google/go-cmp/cmp"
)

func seedZone(name string) domain.Zone {
	return domain.Zone{
		Name: name,
		Kind: domain.KindNative,
		RRsets: []domain.RRset{
			{Name: name, Type: "SOA", TTL: 3600, Records: rrset.Contents("ns1.example.net. hostmaster." + name + " 1 10800 3600 604800 3600")},
			{Name: name, Type: "NS", TTL: 86400, Records: rrset.Contents("ns1.example.net.", "ns2.example.net.")},
			{Name: "www." + name, Type: "A", TTL: 3600, Records: rrset.Contents("127.0.0.1")},
			{Name: "mail." + name, Type: "MX", TTL: 300, Records: rrset.Contents("10 mx1." + name)},
		},
	}
}

func newZoneFixture(t *testing.T, opts ...pdnstest.Option) (*pdnstest.Server, *Zone) {
	t.Helper()
	opts = append([]pdnstest.Option{pdnstest.WithZone(seedZone("example.com."))}, opts...)
	fake := pdnstest.New(t, opts...)
	c := newTestClient(t, fake)
	return fake, c.Server("localhost").Zone("example.com.")
}

func lastPatch(t *testing.T, fake *pdnstest.Server) domain.Changeset {
	t.Helper()
	req, ok := fake.LastRequest(http.MethodPatch)
	if !ok {
		t.Fatal("no PATCH request recorded")
	}
	var cs domain.Changeset
	if err := json.Unmarshal(req.Body, &cs); err != nil {
		t.Fatalf("decode PATCH body: %v", err)
	}
	return cs
}

func contentsOf(t *testing.T, fake *pdnstest.Server, name, rrtype string) []string {
	t.Helper()
	r, ok := fake.RRset("example.com.", name, rrtype)
	if !ok {
		return nil
	}
	return r.Contents()
}

// --- Snapshot ---

func TestZoneSnapshot(t *testing.T) {
	for _, version := range []int{0, 1} {
		fake := pdnstest.New(t, pdnstest.WithVersion(version), pdnstest.WithZone(seedZone("example.com.")))
		c := newTestClient(t, fake)

		snap, err := c.Server("localhost").Zone("example.com.").Snapshot(context.Background())
		if err != nil {
			t.Fatalf("v%d: Snapshot() error = %v", version, err)
		}

		got, ok := snap.Find("www.example.com.", "A")
		if !ok {
			t.Fatalf("v%d: www A not in snapshot", version)
		}
		want := domain.RRset{Name: "www.example.com.", Type: "A", TTL: 3600, Records: rrset.Contents("127.0.0.1")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("v%d: rrset mismatch (-want +got):\n%s", version, diff)
		}
	}
}

func TestZoneSnapshot_NotFound(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)

	_, err := c.Server("localhost").Zone("missing.example.").Snapshot(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- Add / Update / Remove ---

func TestZoneAdd_MergesWithExisting(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.Add(context.Background(), Edit{
		Name: "www.example.com.", Type: "A", TTL: 3600, Records: rrset.Contents("127.0.2.1"),
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	cs := lastPatch(t, fake)
	want := domain.Changeset{RRsets: []domain.RRset{{
		Name: "www.example.com.", Type: "A", TTL: 3600, ChangeType: domain.ChangeReplace,
		Records: rrset.Contents("127.0.0.1", "127.0.2.1"),
	}}}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("PATCH body mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"127.0.0.1", "127.0.2.1"}, contentsOf(t, fake, "www.example.com.", "A")); diff != "" {
		t.Errorf("stored contents mismatch (-want +got):\n%s", diff)
	}
}

func TestZoneAdd_LegacyRecordsCarryIdentity(t *testing.T) {
	fake := pdnstest.New(t, pdnstest.WithVersion(0), pdnstest.WithZone(seedZone("example.com")))
	c := newTestClient(t, fake)
	zone := c.Server("localhost").Zone("example.com")

	err := zone.Add(context.Background(), Edit{Name: "www.example.com", Type: "A", Records: rrset.Contents("192.0.2.7")})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	req, _ := fake.LastRequest(http.MethodPatch)
	if req.Path != "/servers/localhost/zones/example.com" {
		t.Errorf("PATCH path = %q", req.Path)
	}
	cs := lastPatch(t, fake)
	for _, rec := range cs.RRsets[0].Records {
		if rec.Name != "www.example.com" || rec.Type != "A" || rec.TTL != 3600 {
			t.Errorf("legacy record missing rrset identity: %+v", rec)
		}
	}
}

func TestZoneUpdate_Replaces(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.Update(context.Background(),
		Edit{Name: "www.example.com.", Type: "A", TTL: 60, Records: rrset.Contents("192.0.2.1", "192.0.2.2")},
		Edit{Name: "txt.example.com.", Type: "TXT", TTL: 60, Records: rrset.Contents(`"v=spf1 -all"`)},
	)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if diff := cmp.Diff([]string{"192.0.2.1", "192.0.2.2"}, contentsOf(t, fake, "www.example.com.", "A")); diff != "" {
		t.Errorf("www A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`"v=spf1 -all"`}, contentsOf(t, fake, "txt.example.com.", "TXT")); diff != "" {
		t.Errorf("txt TXT mismatch (-want +got):\n%s", diff)
	}
}

func TestZoneUpdate_ValidationErrorSendsNothing(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.Update(context.Background(), Edit{Name: "www.example.com.", Type: "A", TTL: 60})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, ok := fake.LastRequest(http.MethodPatch); ok {
		t.Error("no PATCH should be sent for an invalid edit")
	}
}

func TestZoneUpdate_DuplicateRRsetRejected(t *testing.T) {
	_, zone := newZoneFixture(t)

	err := zone.Update(context.Background(),
		Edit{Name: "a.example.com.", Type: "A", TTL: 60, Records: rrset.Contents("192.0.2.1")},
		Edit{Name: "a.example.com.", Type: "A", TTL: 60, Records: rrset.Contents("192.0.2.2")},
	)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestZoneUpdateRecord_SameRRset(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.UpdateRecord(context.Background(),
		Edit{Name: "www.example.com.", Type: "A", Records: rrset.Contents("127.0.0.1")},
		Edit{Name: "www.example.com.", Type: "A", Records: rrset.Contents("127.0.0.2")},
	)
	if err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}

	cs := lastPatch(t, fake)
	if len(cs.RRsets) != 1 {
		t.Fatalf("expected a single rrset in the changeset, got %d", len(cs.RRsets))
	}
	if diff := cmp.Diff([]string{"127.0.0.2"}, contentsOf(t, fake, "www.example.com.", "A")); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	r, _ := fake.RRset("example.com.", "www.example.com.", "A")
	if r.TTL != 3600 {
		t.Errorf("TTL = %d, want existing 3600", r.TTL)
	}
}

func TestZoneUpdateRecord_MovesBetweenRRsets(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.UpdateRecord(context.Background(),
		Edit{Name: "www.example.com.", Type: "A", Records: rrset.Contents("127.0.0.1")},
		Edit{Name: "web.example.com.", Type: "A", TTL: 120, Records: rrset.Contents("127.0.0.1")},
	)
	if err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}

	if got := contentsOf(t, fake, "www.example.com.", "A"); got != nil {
		t.Errorf("expected www A to be gone, got %v", got)
	}
	if diff := cmp.Diff([]string{"127.0.0.1"}, contentsOf(t, fake, "web.example.com.", "A")); diff != "" {
		t.Errorf("web A mismatch (-want +got):\n%s", diff)
	}
}

func TestZoneRemove(t *testing.T) {
	fake, zone := newZoneFixture(t)

	if err := zone.Remove(context.Background(), RRsetID{Name: "mail.example.com.", Type: "MX"}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	cs := lastPatch(t, fake)
	want := domain.Changeset{RRsets: []domain.RRset{{
		Name: "mail.example.com.", Type: "MX", ChangeType: domain.ChangeDelete, Records: []domain.Record{},
	}}}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("PATCH body mismatch (-want +got):\n%s", diff)
	}
	if _, ok := fake.RRset("example.com.", "mail.example.com.", "MX"); ok {
		t.Error("MX rrset should be deleted")
	}
}

func TestZoneRemoveRecords(t *testing.T) {
	fake, zone := newZoneFixture(t)

	err := zone.RemoveRecords(context.Background(), Edit{
		Name: "example.com.", Type: "NS", Records: rrset.Contents("ns2.example.net."),
	})
	if err != nil {
		t.Fatalf("RemoveRecords() error = %v", err)
	}

	cs := lastPatch(t, fake)
	if cs.RRsets[0].ChangeType != domain.ChangeReplace {
		t.Errorf("changetype = %s, want REPLACE", cs.RRsets[0].ChangeType)
	}
	if diff := cmp.Diff([]string{"ns1.example.net."}, contentsOf(t, fake, "example.com.", "NS")); diff != "" {
		t.Errorf("NS mismatch (-want +got):\n%s", diff)
	}
}

func TestZoneRemoveAll_KeepsSOAAndNameservers(t *testing.T) {
	fake, zone := newZoneFixture(t)

	n, err := zone.RemoveAll(context.Background(), "ns1.example.net.")
	if err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RemoveAll() = %d, want 2", n)
	}

	z, _ := fake.Zone("example.com.")
	var types []string
	for _, r := range z.RRsets {
		types = append(types, r.Type)
	}
	if diff := cmp.Diff([]string{"SOA", "NS"}, types); diff != "" {
		t.Errorf("remaining rrsets mismatch (-want +got):\n%s", diff)
	}
}

func TestZoneModify_EmptyIsNoop(t *testing.T) {
	fake, zone := newZoneFixture(t)
	before := len(fake.Requests())

	if err := zone.Modify(context.Background()); err != nil {
		t.Fatalf("Modify() error = %v", err)
	}
	if len(fake.Requests()) != before {
		t.Error("empty Modify should not send a request")
	}
}

func TestZoneModify_ServerRejection(t *testing.T) {
	_, zone := newZoneFixture(t)

	err := zone.Modify(context.Background(), domain.RRset{
		Name: "www.other.org.", Type: "A", TTL: 60, ChangeType: domain.ChangeReplace,
		Records: rrset.Contents("192.0.2.1"),
	})
	if !errors.Is(err, domain.ErrUnprocessable) {
		t.Fatalf("expected ErrUnprocessable, got %v", err)
	}
	if !strings.Contains(err.Error(), "out of zone") {
		t.Errorf("expected server message in error, got %v", err)
	}
}

// --- Zone lifecycle and actions ---

func TestZoneLifecycle(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)
	server := c.Server("localhost")
	ctx := context.Background()

	created, err := server.CreateZone(ctx, domain.Zone{
		Name:        "new.example.",
		Kind:        domain.KindMaster,
		Nameservers: []string{"ns1.example.net."},
	})
	if err != nil {
		t.Fatalf("CreateZone() error = %v", err)
	}
	if created.ID != "new.example." || created.Kind != domain.KindMaster {
		t.Errorf("unexpected created zone: %+v", created)
	}

	_, err = server.CreateZone(ctx, domain.Zone{Name: "new.example."})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate create, got %v", err)
	}

	zones, err := server.Zones(ctx)
	if err != nil {
		t.Fatalf("Zones() error = %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "new.example." {
		t.Errorf("unexpected zones: %+v", zones)
	}

	zone := server.Zone("new.example.")
	if err := zone.Change(ctx, domain.Zone{Kind: domain.KindNative}); err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	got, err := zone.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Kind != domain.KindNative {
		t.Errorf("Kind = %s, want Native", got.Kind)
	}
	if len(got.RRsets) != 2 {
		t.Errorf("expected SOA and NS rrsets, got %+v", got.RRsets)
	}

	if err := zone.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := zone.Get(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestZoneActions(t *testing.T) {
	fake, zone := newZoneFixture(t)
	ctx := context.Background()

	if err := zone.Notify(ctx); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if fake.Notifies("example.com.") != 1 {
		t.Errorf("expected one notify")
	}

	if err := zone.AXFRRetrieve(ctx); !errors.Is(err, domain.ErrUnprocessable) {
		t.Errorf("expected ErrUnprocessable for a native zone, got %v", err)
	}

	if err := zone.Rectify(ctx); err != nil {
		t.Fatalf("Rectify() error = %v", err)
	}

	req, _ := fake.LastRequest(http.MethodPut)
	if req.Path != "/api/v1/servers/localhost/zones/example.com./rectify" {
		t.Errorf("rectify path = %q", req.Path)
	}

	report, err := zone.Check(ctx)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if report["zone"] != "example.com." {
		t.Errorf("unexpected check report: %v", report)
	}
}

func TestZoneExport(t *testing.T) {
	for _, version := range []int{0, 1} {
		name := "example.com."
		if version == 0 {
			name = "example.com"
		}
		fake := pdnstest.New(t, pdnstest.WithVersion(version), pdnstest.WithZone(seedZone(name)))
		c := newTestClient(t, fake)

		text, err := c.Server("localhost").Zone(name).Export(context.Background())
		if err != nil {
			t.Fatalf("v%d: Export() error = %v", version, err)
		}
		if !strings.Contains(text, "www."+name+"\t3600\tIN\tA\t127.0.0.1") {
			t.Errorf("v%d: unexpected export:\n%s", version, text)
		}
		if strings.HasPrefix(text, "{") {
			t.Errorf("v%d: export was not unwrapped:\n%s", version, text)
		}
	}
}

func TestZoneHandle_EmptyIDIsValidationError(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)

	_, err := c.Server("localhost").Zone("").Get(context.Background())
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	_, err = c.Server("").Zone("example.com.").Get(context.Background())
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for empty server id, got %v", err)
	}
}

// --- Metadata and cryptokeys ---

func TestZoneMetadata(t *testing.T) {
	fake, zone := newZoneFixture(t)
	ctx := context.Background()

	md := zone.MetadataKind("ALLOW-AXFR-FROM")
	if _, err := md.Create(ctx, "192.0.2.0/24"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	values, err := md.Change(ctx, "198.51.100.0/24", "AUTO-NS")
	if err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	if diff := cmp.Diff([]string{"198.51.100.0/24", "AUTO-NS"}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	req, _ := fake.LastRequest(http.MethodPut)
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode PUT body: %v", err)
	}
	if body["type"] != "Metadata" || body["kind"] != "ALLOW-AXFR-FROM" {
		t.Errorf("unexpected metadata body: %v", body)
	}

	all, err := zone.Metadata(ctx)
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"ALLOW-AXFR-FROM": {"198.51.100.0/24", "AUTO-NS"}}, all); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	if err := md.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := md.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values after delete, got %v", got)
	}
}

func TestZoneCryptoKeys(t *testing.T) {
	_, zone := newZoneFixture(t)
	ctx := context.Background()

	created, err := zone.CreateCryptoKey(ctx, domain.CryptoKey{KeyType: "ksk", Active: true, Algorithm: "ECDSAP256SHA256"})
	if err != nil {
		t.Fatalf("CreateCryptoKey() error = %v", err)
	}

	keys, err := zone.CryptoKeys(ctx)
	if err != nil {
		t.Fatalf("CryptoKeys() error = %v", err)
	}
	if len(keys) != 1 || keys[0].PrivateKey != "" {
		t.Fatalf("unexpected key list: %+v", keys)
	}

	key := zone.CryptoKey(created.ID)
	if err := key.Change(ctx, false); err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	got, err := key.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Active || got.PrivateKey == "" {
		t.Errorf("unexpected key: %+v", got)
	}

	if err := key.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := key.Get(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if _, err := zone.CreateCryptoKey(ctx, domain.CryptoKey{KeyType: "bogus"}); !errors.Is(err, domain.ErrUnprocessable) {
		t.Errorf("expected ErrUnprocessable for bad keytype, got %v", err)
	}
}
