// Package pdns is a client for the PowerDNS Authoritative HTTP API.
//
// A Client talks to one API endpoint. Resource handles (Server, Zone,
// Config, Metadata, CryptoKey, Override) are cheap values holding the
// client and the resource path; they issue no request until a method is
// called on them.
package pdns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/path"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/rrset"
)

const (
	apiKeyHeader = "X-Api-Key"
	apiListPath  = "/api"
)

// Client is a PowerDNS API client bound to one endpoint and schema version.
// It is safe for concurrent use once created.
type Client struct {
	baseURL string
	apiKey  string
	version domain.SchemaVersion
	builder rrset.Builder
	client  *http.Client
	logger  DebugLogger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger logs every request and response at debug level.
// The API key is redacted.
func WithLogger(logger DebugLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client. When settings.Version is nil the schema version is
// detected with GET /api before New returns.
func New(ctx context.Context, settings Settings, opts ...Option) (*Client, error) {
	settings.SetDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("pdns: invalid settings: %w", err)
	}

	c := &Client{
		baseURL: settings.BaseURL(),
		apiKey:  settings.APIKey,
		client:  &http.Client{Timeout: settings.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger != nil {
		c.client = makeLogClient(c.client, c.logger)
	}

	if settings.Version != nil {
		c.setVersion(domain.SchemaVersion(*settings.Version))
		return c, nil
	}

	version, err := c.detectVersion(ctx)
	if err != nil {
		return nil, err
	}
	c.setVersion(version)
	return c, nil
}

func (c *Client) setVersion(v domain.SchemaVersion) {
	c.version = v
	c.builder = rrset.NewBuilder(v)
}

// Version returns the API schema version in use.
func (c *Client) Version() domain.SchemaVersion {
	return c.version
}

// Builder returns the changeset builder for the client's schema version.
func (c *Client) Builder() rrset.Builder {
	return c.builder
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// detectVersion asks GET /api for the published API versions.
// Servers that predate versioning answer with something other than a JSON
// array (usually a 404), which means schema 0. A rejected API key is
// reported rather than mistaken for an old server.
func (c *Client) detectVersion(ctx context.Context) (domain.SchemaVersion, error) {
	status, body, err := c.send(ctx, http.MethodGet, apiListPath, nil)
	if err != nil {
		return 0, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return 0, fmt.Errorf("pdns: detecting api version: %w", newAPIError(status, body))
	}
	if status >= http.StatusMultipleChoices {
		return 0, nil
	}

	var versions []domain.APIVersion
	if err := json.Unmarshal(body, &versions); err != nil {
		return 0, nil
	}

	highest := 0
	for _, v := range versions {
		if v.Version > highest {
			highest = v.Version
		}
	}
	return domain.SchemaVersion(highest), nil
}

// Servers lists the daemons exposed by the API.
func (c *Client) Servers(ctx context.Context) ([]domain.Server, error) {
	var out []domain.Server
	if err := c.do(ctx, http.MethodGet, "/servers", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return out, nil
}

// Server returns a handle on the server with the given id, usually "localhost".
func (c *Client) Server(id string) *Server {
	root := resource{c: c}
	return &Server{resource: root.member("servers", id), id: id}
}

// --- HTTP helpers ---

// do sends a JSON request to rawPath (the version prefix is added here)
// and decodes the answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, rawPath string, body any, out any) error {
	status, data, err := c.send(ctx, method, rawPath, body)
	if err != nil {
		return err
	}
	if status >= http.StatusMultipleChoices {
		return newAPIError(status, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NonJSONError{Body: string(data), Err: err}
	}
	return nil
}

// raw sends a request and returns the undecoded body of a 2xx answer.
func (c *Client) raw(ctx context.Context, method, rawPath string) ([]byte, error) {
	status, data, err := c.send(ctx, method, rawPath, nil)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, newAPIError(status, data)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, rawPath string, body any) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("pdns: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path.URI(c.version, rawPath), bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("pdns: failed to build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("pdns: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("pdns: failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}
