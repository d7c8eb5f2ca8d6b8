package record

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <zone> <name> <type>",
		Short: "Delete a whole RRset",
		Long: `Delete every record of one name and type.

Example:
  pdnsctl record delete example.com old CNAME`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			auditRRset(cmd, args[0], args[1], args[2])

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := svc.DeleteRRset(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s from %s\n", args[1], strings.ToUpper(args[2]), args[0])
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <zone> <name> <type> <old-content> <new-content>",
		Short: "Change the content of one record",
		Long: `Swap one record's content for another, keeping the other records of the
RRset.

Example:
  pdnsctl record update example.com www A 192.0.2.1 192.0.2.10`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetInt("ttl")
			auditRRset(cmd, args[0], args[1], args[2])

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := svc.UpdateRecord(cmd.Context(), args[0], args[1], args[2], args[3], args[4], ttl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s in %s: %s -> %s\n",
				args[1], strings.ToUpper(args[2]), args[0], args[3], args[4])
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("ttl", 0, "New TTL in seconds (default: keep the current TTL)")
	return cmd
}
