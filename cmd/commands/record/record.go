package record

import (
	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// NewCommand returns the "record" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"rrset"},
		Short:   "Manage the records of a zone",
		Long: `List and change the records of a zone.

Names are relative to the zone unless they end with a dot; "@" is the zone
apex. Every change is sent as a single PATCH of the zone.`,
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(ReplaceCommand())
	cmd.AddCommand(RemoveCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(ApplyCommand())

	return cmd
}
