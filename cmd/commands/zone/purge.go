package zone

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/spf13/cobra"
)

func PurgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge <zone>",
		Short: "Delete every record of a zone except SOA and NS",
		Long: `Delete every RRset of a zone in one change, keeping the SOA and the
NS RRsets that list one of the --keep-ns nameservers. Asks for
confirmation unless --yes is given.

Example:
  pdnsctl zone purge example.com --keep-ns ns1.example.net --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetStringSlice("keep-ns")
			cmdutil.Audit(cmd, auditlog.ResourceZone, args[0])

			if err := cmdutil.Confirm(cmd,
				fmt.Sprintf("Purge all records of %s?", args[0]),
				"Only the SOA and the NS records of kept nameservers survive."); err != nil {
				return err
			}

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			removed, err := svc.PurgeZone(cmd.Context(), args[0], keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d RRset(s) from %s\n", removed, args[0])
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringSlice("keep-ns", nil, "Nameserver whose NS RRset is kept (repeatable)")
	cmdutil.AddYesFlag(cmd)
	return cmd
}
