package server

import (
	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Inspect and operate a PowerDNS server",
		Long: `Inspect and operate the PowerDNS daemon behind the API: statistics,
cache flushes, searches, configuration settings and answer overrides.`,
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(StatsCommand())
	cmd.AddCommand(FlushCacheCommand())
	cmd.AddCommand(SearchCommand())
	cmd.AddCommand(SearchLogCommand())
	cmd.AddCommand(APIVersionCommand())
	cmd.AddCommand(ConfigCommand())
	cmd.AddCommand(OverrideCommand())

	return cmd
}
