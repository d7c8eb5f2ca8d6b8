package cmdutil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qdm12/log"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/internal/config"
)

func setupConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	if cfg != nil {
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
	}
	for _, env := range []string{EnvHost, EnvPort, EnvScheme, EnvAPIVersion, EnvServer, EnvLogLevel} {
		t.Setenv(env, "")
	}
}

// resolveWith parses args as flags of a throwaway command and resolves it.
func resolveWith(t *testing.T, args ...string) (*Connection, error) {
	t.Helper()
	var conn *Connection
	var resolveErr error
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, resolveErr = Resolve(cmd)
			return nil
		},
	}
	AddConnectionFlags(cmd)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return conn, resolveErr
}

func TestResolve_Defaults(t *testing.T) {
	setupConfig(t, nil)

	conn, err := resolveWith(t)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if conn.Host != defaultHost || conn.Server != defaultServer {
		t.Errorf("host/server = %q/%q, want defaults", conn.Host, conn.Server)
	}
	if conn.Port != nil || conn.APIVersion != nil {
		t.Errorf("port and version should be left to the client: %v %v", conn.Port, conn.APIVersion)
	}
	if conn.LogLevel != log.LevelWarn {
		t.Errorf("LogLevel = %v, want warning", conn.LogLevel)
	}
}

func TestResolve_Precedence(t *testing.T) {
	zero := 0
	setupConfig(t, &config.Config{
		Host:       "config.example",
		Port:       9000,
		Server:     "cfgserver",
		APIVersion: &zero,
		LogLevel:   "error",
	})
	t.Setenv(EnvHost, "env.example")
	t.Setenv(EnvServer, "envserver")

	conn, err := resolveWith(t, "--host", "flag.example", "--log-level", "info")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if conn.Host != "flag.example" {
		t.Errorf("Host = %q, flag should win", conn.Host)
	}
	if conn.Server != "envserver" {
		t.Errorf("Server = %q, environment should beat config", conn.Server)
	}
	if conn.Port == nil || *conn.Port != 9000 {
		t.Errorf("Port = %v, want 9000 from config", conn.Port)
	}
	if conn.APIVersion == nil || *conn.APIVersion != 0 {
		t.Errorf("APIVersion = %v, want pinned 0 from config", conn.APIVersion)
	}
	if conn.LogLevel != log.LevelInfo {
		t.Errorf("LogLevel = %v, want info", conn.LogLevel)
	}
}

func TestResolve_DebugFlag(t *testing.T) {
	setupConfig(t, &config.Config{LogLevel: "error"})

	conn, err := resolveWith(t, "--debug")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if conn.LogLevel != log.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", conn.LogLevel)
	}
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"port", []string{"--port", "70000"}, config.ErrValueNotValid},
		{"api version", []string{"--api-version", "3"}, config.ErrValueNotValid},
		{"log level", []string{"--log-level", "loud"}, config.ErrLogLevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfig(t, nil)
			_, err := resolveWith(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolve_InvalidServer(t *testing.T) {
	setupConfig(t, nil)
	_, err := resolveWith(t, "--server", "../etc")
	if err == nil || !strings.Contains(err.Error(), "server") {
		t.Errorf("expected server id error, got %v", err)
	}
}
