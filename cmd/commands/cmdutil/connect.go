// Package cmdutil holds what every pdnsctl command group shares: the
// connection flags, the logger, the service constructor, output helpers and
// the confirmation guard for destructive commands.
package cmdutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/log"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/config"
	"nathanbeddoewebdev/pdnsctl/internal/pdns"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/services"
	"nathanbeddoewebdev/pdnsctl/internal/services/auth"
	"nathanbeddoewebdev/pdnsctl/internal/util"
)

// Environment variables read when the matching flag is not given.
const (
	EnvHost       = "PDNS_HOST"
	EnvPort       = "PDNS_PORT"
	EnvScheme     = "PDNS_SCHEME"
	EnvAPIVersion = "PDNS_API_VERSION"
	EnvServer     = "PDNS_SERVER"
	EnvLogLevel   = "PDNSCTL_LOG_LEVEL"
)

const (
	defaultHost     = "127.0.0.1"
	defaultServer   = "localhost"
	defaultLogLevel = "warning"
)

// StoreFactory returns the API key store. Tests replace it.
var StoreFactory = auth.DefaultStore

// AddConnectionFlags registers the flags that select the API endpoint on
// cmd and all of its subcommands.
func AddConnectionFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("host", "", "PowerDNS API host (env "+EnvHost+", default "+defaultHost+")")
	f.String("port", "", "PowerDNS API port (env "+EnvPort+", default 8081)")
	f.String("scheme", "", "http or https (env "+EnvScheme+")")
	f.String("api-version", "", "API schema version 0 or 1, detected when unset (env "+EnvAPIVersion+")")
	f.String("server", "", "Server id (env "+EnvServer+", default "+defaultServer+")")
	f.String("log-level", "", "debug, info, warning or error (env "+EnvLogLevel+")")
	f.Bool("debug", false, "Log every API request and response (same as --log-level debug)")
}

// Connection is the resolved endpoint of one invocation.
type Connection struct {
	Host       string
	Port       *uint16
	Scheme     string
	APIVersion *int
	Server     string
	LogLevel   log.Level
}

// Resolve merges flags, PDNS_* environment variables and the config file,
// in that order of precedence.
func Resolve(cmd *cobra.Command) (*Connection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	conn := &Connection{
		Host:   strings.TrimSpace(first(flag(cmd, "host"), os.Getenv(EnvHost), cfg.Host)),
		Scheme: util.NormalizeKey(first(flag(cmd, "scheme"), os.Getenv(EnvScheme), cfg.Scheme)),
		Server: strings.TrimSpace(first(flag(cmd, "server"), os.Getenv(EnvServer), cfg.Server)),
	}
	conn.Host = gosettings.DefaultComparable(conn.Host, defaultHost)
	conn.Server = gosettings.DefaultComparable(conn.Server, defaultServer)
	if err := util.ValidateServerID(conn.Server); err != nil {
		return nil, err
	}

	if raw := first(flag(cmd, "port"), os.Getenv(EnvPort)); raw != "" {
		port, err := config.ParsePort(raw)
		if err != nil {
			return nil, err
		}
		conn.Port = &port
	} else if cfg.Port != 0 {
		port := cfg.Port
		conn.Port = &port
	}

	if raw := first(flag(cmd, "api-version"), os.Getenv(EnvAPIVersion)); raw != "" {
		version, err := config.ParseAPIVersion(raw)
		if err != nil {
			return nil, err
		}
		conn.APIVersion = &version
	} else {
		conn.APIVersion = cfg.APIVersion
	}

	level := first(flag(cmd, "log-level"), os.Getenv(EnvLogLevel), cfg.LogLevel, defaultLogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	conn.LogLevel, err = config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// Logger returns the leveled logger writing to the command's stderr.
func (c *Connection) Logger(cmd *cobra.Command) *log.Logger {
	return log.New(
		log.SetLevel(c.LogLevel),
		log.SetWriters(cmd.ErrOrStderr()),
		log.SetComponent("pdns"),
	)
}

// NewService resolves the connection, looks up the API key for its host and
// returns a Service bound to the selected server. When the schema version
// is not pinned this issues GET /api.
func NewService(cmd *cobra.Command, opts ...services.Option) (*services.Service, error) {
	conn, err := Resolve(cmd)
	if err != nil {
		return nil, err
	}
	logger := conn.Logger(cmd)

	key, source, err := auth.ResolveKey(StoreFactory(), conn.Host)
	if err != nil {
		if errors.Is(err, auth.ErrKeyNotFound) {
			return nil, fmt.Errorf("no API key for %s: run \"pdnsctl auth login\" or set %s",
				conn.Host, auth.EnvAPIKey)
		}
		return nil, fmt.Errorf("failed to read API key: %w", err)
	}

	settings := pdns.Settings{
		Host:    conn.Host,
		Port:    conn.Port,
		Scheme:  conn.Scheme,
		APIKey:  key,
		Version: conn.APIVersion,
	}
	settings.SetDefaults()
	logger.Debug(settings.String())
	logger.Debugf("API key read from %s", source)

	client, err := pdns.New(cmd.Context(), settings, pdns.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Infof("using API schema version %d at %s", client.Version(), client.BaseURL())

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{Server: conn.Server}))
	return services.New(client, conn.Server, opts...), nil
}

func flag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
