package pdns

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"

	"github.com/google/go-cmp/cmp"
)

func TestServerGet(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)

	got, err := c.Server("localhost").Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "localhost" || got.DaemonType != "authoritative" {
		t.Errorf("unexpected server: %+v", got)
	}

	_, err = c.Server("other").Get(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown server, got %v", err)
	}
}

func TestServerConfig(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)
	server := c.Server("localhost")
	ctx := context.Background()

	all, err := server.Config(ctx)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if all["default-ttl"] != "3600" {
		t.Errorf("default-ttl = %q, want 3600", all["default-ttl"])
	}

	setting := server.ConfigSetting("default-ttl")
	if err := setting.Change(ctx, "300"); err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	got, err := setting.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := &domain.ConfigSetting{Type: "ConfigSetting", Name: "default-ttl", Value: "300"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("setting mismatch (-want +got):\n%s", diff)
	}

	req, _ := fake.LastRequest(http.MethodPut)
	if req.Path != "/api/v1/servers/localhost/config/default-ttl" {
		t.Errorf("PUT path = %q", req.Path)
	}
}

func TestServerOverrides(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)
	server := c.Server("localhost")
	ctx := context.Background()

	created, err := server.CreateOverride(ctx, domain.Override{
		Override: "replace", Domain: "blocked.example.", RRType: "A", Values: []string{"0.0.0.0"},
	})
	if err != nil {
		t.Fatalf("CreateOverride() error = %v", err)
	}
	if created.ID == 0 || created.Type != "Override" {
		t.Errorf("unexpected override: %+v", created)
	}

	o := server.Override(created.ID)
	if err := o.Change(ctx, domain.Override{Override: "ignore", Domain: "blocked.example."}); err != nil {
		t.Fatalf("Change() error = %v", err)
	}
	got, err := o.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Override != "ignore" {
		t.Errorf("Override = %q, want ignore", got.Override)
	}

	list, err := server.Overrides(ctx)
	if err != nil {
		t.Fatalf("Overrides() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 override, got %d", len(list))
	}

	if err := o.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := o.Get(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestServerStatisticsAndCache(t *testing.T) {
	fake := pdnstest.New(t)
	c := newTestClient(t, fake)
	server := c.Server("localhost")
	ctx := context.Background()

	stats, err := server.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if len(stats) == 0 || stats[0].Name != "uptime" || stats[0].ValueString() != "4242" {
		t.Errorf("unexpected statistics: %+v", stats)
	}

	n, err := server.FlushCache(ctx, "example.com.")
	if err != nil {
		t.Fatalf("FlushCache() error = %v", err)
	}
	if n != 1 {
		t.Errorf("FlushCache() = %d, want 1", n)
	}
	if diff := cmp.Diff([]string{"example.com."}, fake.Flushed()); diff != "" {
		t.Errorf("flushed mismatch (-want +got):\n%s", diff)
	}
}

func TestServerSearch(t *testing.T) {
	fake := pdnstest.New(t,
		pdnstest.WithZone(seedZone("example.com.")),
		pdnstest.WithLogLines("Mar 1 zone example.com. loaded", "Mar 1 startup complete"),
	)
	c := newTestClient(t, fake)
	server := c.Server("localhost")
	ctx := context.Background()

	lines, err := server.SearchLog(ctx, "example.com.")
	if err != nil {
		t.Fatalf("SearchLog() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Mar 1 zone example.com. loaded"}, lines); diff != "" {
		t.Errorf("log lines mismatch (-want +got):\n%s", diff)
	}

	results, err := server.SearchData(ctx, "127.0.0.1", 10, "record")
	if err != nil {
		t.Fatalf("SearchData() error = %v", err)
	}
	want := []domain.SearchResult{{
		Name: "www.example.com.", ObjectType: "record", Zone: "example.com.", ZoneID: "example.com.",
		Type: "A", Content: "127.0.0.1", TTL: 3600,
	}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}

	req, _ := fake.LastRequest(http.MethodGet)
	if req.Query.Get("max") != "10" || req.Query.Get("object_type") != "record" {
		t.Errorf("unexpected query: %v", req.Query)
	}
}
