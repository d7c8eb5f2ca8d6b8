package pdns

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Server is a handle on /servers/{id}.
type Server struct {
	resource
	id string
}

// ID returns the server id.
func (s *Server) ID() string {
	return s.id
}

// Get fetches the server description.
func (s *Server) Get(ctx context.Context) (*domain.Server, error) {
	var out domain.Server
	if err := s.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get server %s: %w", s.id, err)
	}
	return &out, nil
}

// Config returns every configuration setting of the server as name -> value.
func (s *Server) Config(ctx context.Context) (map[string]string, error) {
	var settings []domain.ConfigSetting
	if err := s.collection("config").get(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to list config of server %s: %w", s.id, err)
	}

	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Name] = setting.Value
	}
	return out, nil
}

// ConfigSetting returns a handle on one configuration setting.
func (s *Server) ConfigSetting(name string) *Config {
	return &Config{resource: s.member("config", name), name: name}
}

// Overrides lists the server's answer overrides.
func (s *Server) Overrides(ctx context.Context) ([]domain.Override, error) {
	var out []domain.Override
	if err := s.collection("overrides").get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to list overrides of server %s: %w", s.id, err)
	}
	return out, nil
}

// Override returns a handle on one override.
func (s *Server) Override(id int) *Override {
	return &Override{resource: s.member("overrides", strconv.Itoa(id)), id: id}
}

// CreateOverride adds an override and returns it as stored by the server.
func (s *Server) CreateOverride(ctx context.Context, o domain.Override) (*domain.Override, error) {
	o.Type = "Override"
	var out domain.Override
	if err := s.collection("overrides").post(ctx, o, &out); err != nil {
		return nil, fmt.Errorf("failed to create override for %s: %w", o.Domain, err)
	}
	return &out, nil
}

// Zones lists the zones hosted by the server, without their RRsets.
func (s *Server) Zones(ctx context.Context) ([]domain.Zone, error) {
	var out []domain.Zone
	if err := s.collection("zones").get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to list zones of server %s: %w", s.id, err)
	}
	return out, nil
}

// Zone returns a handle on the zone with the given id, for example "example.com.".
func (s *Server) Zone(id string) *Zone {
	return &Zone{resource: s.member("zones", id), id: id}
}

// CreateZone creates zone. Name is required; PowerDNS fills in the rest.
func (s *Server) CreateZone(ctx context.Context, zone domain.Zone) (*domain.Zone, error) {
	return s.Zone(zone.Name).Create(ctx, zone)
}

// Statistics returns the server's counters.
func (s *Server) Statistics(ctx context.Context) ([]domain.StatisticItem, error) {
	var out []domain.StatisticItem
	if err := s.collection("statistics").get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get statistics of server %s: %w", s.id, err)
	}
	return out, nil
}

type flushResult struct {
	Count  int    `json:"count"`
	Result string `json:"result"`
}

// FlushCache drops cached entries for name and everything below it and
// returns how many entries were removed.
func (s *Server) FlushCache(ctx context.Context, name string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	coll := s.collection("cache").collection("flush")
	if coll.err != nil {
		return 0, coll.err
	}

	var out flushResult
	q := url.Values{"domain": {name}}
	if err := s.c.do(ctx, http.MethodPut, coll.path+"?"+q.Encode(), nil, &out); err != nil {
		return 0, fmt.Errorf("failed to flush cache for %s: %w", name, err)
	}
	return out.Count, nil
}

// SearchLog returns log lines matching q.
func (s *Server) SearchLog(ctx context.Context, q string) ([]string, error) {
	coll := s.collection("search-log")
	if coll.err != nil {
		return nil, coll.err
	}

	var out []string
	v := url.Values{"q": {q}}
	if err := s.c.do(ctx, http.MethodGet, coll.path+"?"+v.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to search log for %q: %w", q, err)
	}
	return out, nil
}

// SearchData searches zones, records and comments. limit <= 0 leaves the
// server default in place; objectType is one of all, zone, record, comment
// or empty.
func (s *Server) SearchData(ctx context.Context, q string, limit int, objectType string) ([]domain.SearchResult, error) {
	coll := s.collection("search-data")
	if coll.err != nil {
		return nil, coll.err
	}

	v := url.Values{"q": {q}}
	if limit > 0 {
		v.Set("max", strconv.Itoa(limit))
	}
	if objectType != "" {
		v.Set("object_type", objectType)
	}

	var out []domain.SearchResult
	if err := s.c.do(ctx, http.MethodGet, coll.path+"?"+v.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to search data for %q: %w", q, err)
	}
	return out, nil
}
