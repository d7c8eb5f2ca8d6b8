package zone

import (
	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// NewCommand returns the "zone" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Manage zones",
		Long: `Create, inspect, export, check and delete the zones of a PowerDNS server.

Zone names may be given with or without the trailing dot.`,
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(ExportCommand())
	cmd.AddCommand(CheckCommand())
	cmd.AddCommand(NotifyCommand())
	cmd.AddCommand(AXFRRetrieveCommand())
	cmd.AddCommand(RectifyCommand())
	cmd.AddCommand(PurgeCommand())

	return cmd
}
