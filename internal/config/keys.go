package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/util"
)

// ErrValueNotValid is wrapped by every KeySpec.Set rejection.
var ErrValueNotValid = errors.New("configuration value is not valid")

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "host").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key, or "" when unset.
	Get func(cfg *Config) string

	// Set validates value and applies it to the given Config (in memory
	// only; the caller is responsible for calling Save). An empty value
	// clears the key.
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "host",
		Description: "PowerDNS API host name or address",
		Get:         func(cfg *Config) string { return cfg.Host },
		Set: func(cfg *Config, v string) error {
			cfg.Host = strings.TrimSpace(v)
			return nil
		},
	},
	{
		Name:        "port",
		Description: "PowerDNS API port (default 8081)",
		Get: func(cfg *Config) string {
			if cfg.Port == 0 {
				return ""
			}
			return strconv.Itoa(int(cfg.Port))
		},
		Set: func(cfg *Config, v string) error {
			if v == "" {
				cfg.Port = 0
				return nil
			}
			port, err := ParsePort(v)
			if err != nil {
				return err
			}
			cfg.Port = port
			return nil
		},
	},
	{
		Name:        "scheme",
		Description: "http or https (default http)",
		Get:         func(cfg *Config) string { return cfg.Scheme },
		Set: func(cfg *Config, v string) error {
			v = util.NormalizeKey(v)
			if v != "" && v != "http" && v != "https" {
				return fmt.Errorf("%w: scheme %q must be http or https", ErrValueNotValid, v)
			}
			cfg.Scheme = v
			return nil
		},
	},
	{
		Name:        "api-version",
		Description: "API schema version (0 or 1); unset means auto-detect",
		Get: func(cfg *Config) string {
			if cfg.APIVersion == nil {
				return ""
			}
			return strconv.Itoa(*cfg.APIVersion)
		},
		Set: func(cfg *Config, v string) error {
			if v == "" {
				cfg.APIVersion = nil
				return nil
			}
			version, err := ParseAPIVersion(v)
			if err != nil {
				return err
			}
			cfg.APIVersion = &version
			return nil
		},
	},
	{
		Name:        "server",
		Description: "Server id used when --server is not specified (default localhost)",
		Get:         func(cfg *Config) string { return cfg.Server },
		Set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if err := util.ValidateServerID(v); err != nil {
					return fmt.Errorf("%w: %w", ErrValueNotValid, err)
				}
			}
			cfg.Server = v
			return nil
		},
	},
	{
		Name:        "log-level",
		Description: "debug, info, warning or error (default warning)",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set: func(cfg *Config, v string) error {
			v = util.NormalizeKey(v)
			if v != "" {
				if _, err := ParseLogLevel(v); err != nil {
					return fmt.Errorf("%w: %w", ErrValueNotValid, err)
				}
			}
			cfg.LogLevel = v
			return nil
		},
	},
	{
		Name:        "notify-url",
		Description: "Shoutrrr URL notified after each change, e.g. discord://token@id",
		Get:         func(cfg *Config) string { return cfg.NotifyURL },
		Set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if u, err := url.Parse(v); err != nil || u.Scheme == "" {
					return fmt.Errorf("%w: notify-url %q is not a service URL", ErrValueNotValid, v)
				}
			}
			cfg.NotifyURL = v
			return nil
		},
	},
}

// ParsePort parses a TCP port number between 1 and 65535.
func ParsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: port %q must be between 1 and 65535", ErrValueNotValid, s)
	}
	return uint16(n), nil
}

// ParseAPIVersion parses a PowerDNS API schema version.
func ParseAPIVersion(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil || n < 0 || n > 1 {
		return 0, fmt.Errorf("%w: api-version %q must be 0 or 1", ErrValueNotValid, s)
	}
	return n, nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		maxLen = max(maxLen, len(k.Name))
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
