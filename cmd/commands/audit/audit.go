// Package audit implements "pdnsctl audit", which shows and prunes the local
// record of changes pdnsctl made to PowerDNS servers.
package audit

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the change history",
		Long: "Every pdnsctl command that changes a server (zones, records, metadata,\n" +
			"DNSSEC keys, overrides and settings) is recorded in a local SQLite database\n" +
			"next to the configuration file. Use these commands to review or prune it.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
