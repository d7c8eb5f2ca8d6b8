package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/audit"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/pdnsctl/cmd/commands/config"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/cryptokey"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/metadata"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/record"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/server"
	"nathanbeddoewebdev/pdnsctl/cmd/commands/zone"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/config"
	"nathanbeddoewebdev/pdnsctl/internal/notify"

	"github.com/qdm12/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "pdnsctl",
		Short: "A CLI tool for managing PowerDNS through its HTTP API",
		Long: `pdnsctl manages zones, records, metadata and DNSSEC keys of a PowerDNS
authoritative server (or recursor overrides) through the HTTP API. It speaks
both the current /api/v1 schema and the legacy unversioned one, detecting
which the server offers unless told otherwise.

Connection settings come from flags, then PDNS_HOST, PDNS_PORT, PDNS_SCHEME,
PDNS_API_VERSION and PDNS_SERVER, then "pdnsctl config set". The API key
comes from PDNS_API_KEY or the system keychain.

Quick start:
  pdnsctl config set host pdns.example.net
  pdnsctl auth login                      # Store the API key
  pdnsctl zone list
  pdnsctl record add example.com www A 192.0.2.1`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(server.NewCommand())
	cmd.AddCommand(zone.NewCommand())
	cmd.AddCommand(record.NewCommand())
	cmd.AddCommand(metadata.NewCommand())
	cmd.AddCommand(cryptokey.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute runs the command line and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes args. Commands that changed a server are recorded in the
// audit log and, when notify-url is configured, announced.
func run(args []string, stdout, stderr io.Writer) error {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	start := time.Now()
	cmd, err := root.ExecuteC()
	if cmd == nil {
		return err
	}

	meta := auditlog.MetadataFromContext(cmd.Context())
	if meta.ResourceType == "" {
		return err
	}
	auditlog.Write(auditlog.NewEntry(cmd.CommandPath(), args, meta, start, err))
	if err == nil {
		announce(stderr, cmd.CommandPath(), meta)
	}
	return err
}

func announce(stderr io.Writer, command string, meta auditlog.Metadata) {
	cfg, err := config.Load()
	if err != nil || cfg.NotifyURL == "" {
		return
	}

	logger := log.New(log.SetWriters(stderr), log.SetComponent("notify"))
	client, err := notify.New(notify.Settings{
		Addresses: []string{cfg.NotifyURL},
		Logger:    logger,
	})
	if err != nil {
		logger.Error(err.Error())
		return
	}
	client.Notify(message(command, meta))
}

func message(command string, meta auditlog.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", command, meta.ResourceType)
	if meta.ResourceID != "" {
		b.WriteString(" " + meta.ResourceID)
	}
	if meta.ResourceName != "" {
		fmt.Fprintf(&b, " in %s", meta.ResourceName)
	}
	if meta.Server != "" {
		fmt.Fprintf(&b, " on %s", meta.Server)
	}
	return b.String()
}
