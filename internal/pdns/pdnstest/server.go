// Package pdnstest runs an in-memory PowerDNS API for tests.
//
// The fake keeps zones, metadata, DNSSEC keys, config settings and
// overrides in memory and applies PATCH changesets the way PowerDNS does,
// so tests can assert on resulting zone state as well as on the requests
// that were sent. It serves either the legacy unversioned API (schema 0,
// flat record lists) or /api/vN.
package pdnstest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"

	"github.com/go-chi/chi/v5"
)

const (
	// DefaultAPIKey is the key the fake accepts unless WithAPIKey is used.
	DefaultAPIKey = "test-api-key"
	// ServerID is the id of the single daemon the fake exposes.
	ServerID = "localhost"
)

// Request is a request received by the fake.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	APIKey string
	Body   []byte
}

// Server is a running fake PowerDNS API.
type Server struct {
	*httptest.Server

	version int
	apiKey  string

	mu           sync.Mutex
	requests     []Request
	failures     map[string]int
	zones        map[string]*zoneState
	zoneOrder    []string
	config       []domain.ConfigSetting
	overrides    map[int]domain.Override
	nextOverride int
	stats        []domain.StatisticItem
	logLines     []string
	flushed      []string
}

// Option configures a Server.
type Option func(*Server)

// WithVersion selects the API schema version. 0 serves the legacy API.
func WithVersion(v int) Option {
	return func(s *Server) { s.version = v }
}

// WithAPIKey sets the key the fake expects in X-API-Key.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithZone seeds a zone. Its RRsets are stored as given.
func WithZone(zone domain.Zone) Option {
	return func(s *Server) { s.addZone(zone) }
}

// WithOverride seeds an answer override. Its id is assigned by the fake.
func WithOverride(o domain.Override) Option {
	return func(s *Server) {
		o.ID = s.nextOverride
		o.Type = "Override"
		s.overrides[o.ID] = o
		s.nextOverride++
	}
}

// WithLogLines seeds the lines returned by search-log.
func WithLogLines(lines ...string) Option {
	return func(s *Server) { s.logLines = append(s.logLines, lines...) }
}

// New starts a fake and closes it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		version:      1,
		apiKey:       DefaultAPIKey,
		failures:     map[string]int{},
		zones:        map[string]*zoneState{},
		overrides:    map[int]domain.Override{},
		nextOverride: 1,
		config: []domain.ConfigSetting{
			{Type: "ConfigSetting", Name: "allow-axfr-ips", Value: "127.0.0.0/8"},
			{Type: "ConfigSetting", Name: "default-ttl", Value: "3600"},
		},
		stats: []domain.StatisticItem{
			{Name: "uptime", Type: "StatisticItem", Value: json.RawMessage(`"4242"`)},
			{Name: "udp-queries", Type: "StatisticItem", Value: json.RawMessage(`"17"`)},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Host and Port split the listener address for clients configured with
// host/port settings.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Hostname()
}

func (s *Server) Port() uint16 {
	u, _ := url.Parse(s.URL)
	p, _ := strconv.Atoi(u.Port())
	return uint16(p)
}

// APIKey returns the key the fake accepts.
func (s *Server) APIKey() string {
	return s.apiKey
}

// Version returns the schema version served.
func (s *Server) Version() int {
	return s.version
}

// Requests returns every request received so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request with the given method.
func (s *Server) LastRequest(method string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// Fail makes the next request matching method and path (without the
// version prefix) answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Flushed returns the names passed to cache flush.
func (s *Server) Flushed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.flushed...)
}

// prefix is the path prefix of every versioned route.
func (s *Server) prefix() string {
	if s.version <= 0 {
		return ""
	}
	return "/api/v" + strconv.Itoa(s.version)
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(s.record, s.authenticate, s.injectFailures)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	if s.version > 0 {
		router.Get("/api", s.listVersions)
	}

	router.Route(s.prefix()+"/servers", func(r chi.Router) {
		r.Get("/", s.listServers)
		r.Route("/{server}", func(r chi.Router) {
			r.Use(s.requireServer)
			r.Get("/", s.getServer)

			r.Get("/config", s.listConfig)
			r.Get("/config/{name}", s.getConfig)
			r.Put("/config/{name}", s.putConfig)

			r.Get("/overrides", s.listOverrides)
			r.Post("/overrides", s.createOverride)
			r.Get("/overrides/{id}", s.getOverride)
			r.Put("/overrides/{id}", s.putOverride)
			r.Delete("/overrides/{id}", s.deleteOverride)

			r.Get("/statistics", s.getStatistics)
			r.Put("/cache/flush", s.flushCache)
			r.Get("/search-log", s.searchLog)
			r.Get("/search-data", s.searchData)

			r.Get("/zones", s.listZones)
			r.Post("/zones", s.createZone)
			r.Route("/zones/{zone}", s.zoneRoutes)
		})
	})

	return router
}

// --- middleware ---

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			APIKey: r.Header.Get("X-API-Key"),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, s.prefix())

		s.mu.Lock()
		status, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if ok {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireServer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "server") != ServerID {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- servers ---

func (s *Server) listVersions(w http.ResponseWriter, _ *http.Request) {
	versions := make([]domain.APIVersion, 0, s.version)
	for v := 1; v <= s.version; v++ {
		versions = append(versions, domain.APIVersion{URL: "/api/v" + strconv.Itoa(v), Version: v})
	}
	writeJSON(w, http.StatusOK, versions)
}

func (s *Server) serverInfo() domain.Server {
	base := s.prefix() + "/servers/" + ServerID
	return domain.Server{
		Type:       "Server",
		ID:         ServerID,
		DaemonType: "authoritative",
		Version:    "4.9.0",
		URL:        base,
		ConfigURL:  base + "/config{/config_setting}",
		ZonesURL:   base + "/zones{/zone}",
	}
}

func (s *Server) listServers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []domain.Server{s.serverInfo()})
}

func (s *Server) getServer(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.serverInfo())
}

// --- config ---

func (s *Server) listConfig(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.config)
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.config {
		if c.Name == name {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Config setting not found")
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body domain.ConfigSetting
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Name != name {
		writeError(w, http.StatusUnprocessableEntity, "name in body does not match URL")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.config {
		if c.Name == name {
			s.config[i].Value = body.Value
			writeJSON(w, http.StatusOK, s.config[i])
			return
		}
	}
	s.config = append(s.config, domain.ConfigSetting{Type: "ConfigSetting", Name: name, Value: body.Value})
	writeJSON(w, http.StatusOK, s.config[len(s.config)-1])
}

// --- overrides ---

// Override returns a stored override.
func (s *Server) Override(id int) (domain.Override, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overrides[id]
	return o, ok
}

func (s *Server) listOverrides(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Override, 0, len(s.overrides))
	for id := 1; id < s.nextOverride; id++ {
		if o, ok := s.overrides[id]; ok {
			out = append(out, o)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createOverride(w http.ResponseWriter, r *http.Request) {
	var body domain.Override
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Domain == "" {
		writeError(w, http.StatusUnprocessableEntity, "domain is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	body.ID = s.nextOverride
	body.Type = "Override"
	s.nextOverride++
	s.overrides[body.ID] = body
	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) overrideID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Override not found")
		return 0, false
	}
	if _, ok := s.overrides[id]; !ok {
		writeError(w, http.StatusNotFound, "Override not found")
		return 0, false
	}
	return id, true
}

func (s *Server) getOverride(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.overrideID(w, r); ok {
		writeJSON(w, http.StatusOK, s.overrides[id])
	}
}

func (s *Server) putOverride(w http.ResponseWriter, r *http.Request) {
	var body domain.Override
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.overrideID(w, r); ok {
		body.ID = id
		s.overrides[id] = body
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) deleteOverride(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.overrideID(w, r); ok {
		delete(s.overrides, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- statistics, cache, search ---

func (s *Server) getStatistics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.stats)
}

func (s *Server) flushCache(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("domain")
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "domain parameter is required")
		return
	}

	s.mu.Lock()
	s.flushed = append(s.flushed, name)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"count": 1, "result": "Flushed cache."})
}

func (s *Server) searchLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for _, line := range s.logLines {
		if strings.Contains(line, q) {
			out = append(out, line)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) searchData(w http.ResponseWriter, r *http.Request) {
	q := strings.Trim(r.URL.Query().Get("q"), "*")
	objectType := r.URL.Query().Get("object_type")
	limit, _ := strconv.Atoi(r.URL.Query().Get("max"))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.SearchResult{}
	for _, id := range s.zoneOrder {
		z := s.zones[id]
		if (objectType == "" || objectType == "all" || objectType == "zone") && strings.Contains(z.zone.Name, q) {
			out = append(out, domain.SearchResult{Name: z.zone.Name, ObjectType: "zone", ZoneID: id})
		}
		if objectType != "" && objectType != "all" && objectType != "record" {
			continue
		}
		for _, rrset := range z.rrsets {
			for _, rec := range rrset.Records {
				if strings.Contains(rrset.Name, q) || strings.Contains(rec.Content, q) {
					out = append(out, domain.SearchResult{
						Name: rrset.Name, ObjectType: "record", Zone: z.zone.Name, ZoneID: id,
						Type: rrset.Type, Content: rec.Content, TTL: rrset.TTL, Disabled: rec.Disabled,
					})
				}
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
