package zone

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/spf13/cobra"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <zone>",
		Short: "Delete a zone and all its records",
		Long: `Delete a zone together with its records, metadata and keys.
Asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.Audit(cmd, auditlog.ResourceZone, args[0])
			if err := cmdutil.Confirm(cmd,
				fmt.Sprintf("Delete zone %s?", args[0]),
				"All records, metadata and DNSSEC keys of the zone are removed."); err != nil {
				return err
			}

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := svc.DeleteZone(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted zone %s\n", args[0])
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddYesFlag(cmd)
	return cmd
}
