package pdns

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
)

const (
	defaultPort    uint16 = 8081
	defaultScheme         = "http"
	defaultTimeout        = 30 * time.Second
)

var (
	ErrHostMissing     = errors.New("host is not set")
	ErrSchemeNotValid  = errors.New("scheme is not valid")
	ErrPortNotValid    = errors.New("port is not valid")
	ErrVersionNotValid = errors.New("api version is not valid")
)

// Settings describe how to reach a PowerDNS API endpoint.
type Settings struct {
	Host   string
	Port   *uint16
	Scheme string
	APIKey string
	// Version pins the API schema version. Nil means it is detected
	// from GET /api when the client is created.
	Version *int
	Timeout time.Duration
}

func (s *Settings) SetDefaults() {
	s.Port = gosettings.DefaultPointer(s.Port, defaultPort)
	s.Scheme = gosettings.DefaultComparable(s.Scheme, defaultScheme)
	s.Timeout = gosettings.DefaultComparable(s.Timeout, defaultTimeout)
}

func (s Settings) Validate() (err error) {
	if s.Host == "" {
		return ErrHostMissing
	}

	switch s.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q must be http or https", ErrSchemeNotValid, s.Scheme)
	}

	if s.Port != nil && *s.Port == 0 {
		return fmt.Errorf("%w: 0", ErrPortNotValid)
	}

	if s.Version != nil && *s.Version < 0 {
		return fmt.Errorf("%w: %d", ErrVersionNotValid, *s.Version)
	}

	return nil
}

// BaseURL returns scheme://host:port without a trailing slash.
func (s Settings) BaseURL() string {
	port := defaultPort
	if s.Port != nil {
		port = *s.Port
	}
	return s.Scheme + "://" + net.JoinHostPort(s.Host, strconv.Itoa(int(port)))
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	node := gotree.New("PowerDNS API")
	node.Appendf("Endpoint: %s", s.BaseURL())

	apiKey := "[not set]"
	if s.APIKey != "" {
		apiKey = "[set]"
	}
	node.Appendf("API key: %s", apiKey)

	version := "auto-detect"
	if s.Version != nil {
		version = strconv.Itoa(*s.Version)
	}
	node.Appendf("Schema version: %s", version)
	node.Appendf("Timeout: %s", s.Timeout)

	return node
}
