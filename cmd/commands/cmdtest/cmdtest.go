// Package cmdtest runs pdnsctl commands against the in-memory PowerDNS fake.
package cmdtest

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/config"
	"nathanbeddoewebdev/pdnsctl/internal/database"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/pdnstest"
	"nathanbeddoewebdev/pdnsctl/internal/services/auth"
)

// Zone is the zone every fake started by Setup serves.
const Zone = "example.com."

// Setup isolates the config file and audit database in a temp directory,
// starts a fake serving Zone and points the PDNS_* environment at it.
func Setup(t *testing.T, opts ...pdnstest.Option) *pdnstest.Server {
	t.Helper()

	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "pdnsctl.db"))
	t.Cleanup(database.ResetPath)

	opts = append([]pdnstest.Option{pdnstest.WithZone(pdnstest.ExampleZone(Zone))}, opts...)
	fake := pdnstest.New(t, opts...)

	t.Setenv(cmdutil.EnvHost, fake.Host())
	t.Setenv(cmdutil.EnvPort, strconv.Itoa(int(fake.Port())))
	t.Setenv(cmdutil.EnvScheme, "")
	t.Setenv(cmdutil.EnvAPIVersion, "")
	t.Setenv(cmdutil.EnvServer, "")
	t.Setenv(cmdutil.EnvLogLevel, "")
	t.Setenv(auth.EnvAPIKey, fake.APIKey())
	return fake
}

// Exec runs cmd with args and returns what it wrote to stdout and stderr.
func Exec(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}
