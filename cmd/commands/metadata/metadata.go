// Package metadata implements "pdnsctl metadata", which edits the per-zone
// metadata PowerDNS keeps next to the records (ALLOW-AXFR-FROM, SOA-EDIT-API,
// TSIG-ALLOW-AXFR and friends).
package metadata

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Manage zone metadata",
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(listCommand())
	cmd.AddCommand(getCommand())
	cmd.AddCommand(setCommand())
	cmd.AddCommand(deleteCommand())

	return cmd
}

func listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <zone>",
		Short: "List the metadata of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			meta, err := zone.Metadata(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), meta)
			}

			if len(meta) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No metadata set.")
				return nil
			}
			kinds := make([]string, 0, len(meta))
			for kind := range meta {
				kinds = append(kinds, kind)
			}
			slices.Sort(kinds)

			w := cmdutil.NewTable(cmd.OutOrStdout(), "KIND", "VALUES")
			for _, kind := range kinds {
				fmt.Fprintf(w, "%s\t%s\n", kind, strings.Join(meta[kind], ", "))
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func getCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <zone> <kind>",
		Short: "Print the values of one metadata kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			values, err := zone.MetadataKind(strings.ToUpper(args[1])).Get(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func setCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <zone> <kind> <value>...",
		Short: "Set the values of one metadata kind",
		Long: `Replace the values of one metadata kind.

Example:
  pdnsctl metadata set example.com ALLOW-AXFR-FROM 192.0.2.0/24 2001:db8::/32`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToUpper(args[1])
			auditMetadata(cmd, args[0], kind)

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			values, err := zone.MetadataKind(kind).Change(cmd.Context(), args[2:]...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s of %s set to %s\n", kind, zone.ID(), strings.Join(values, ", "))
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <zone> <kind>",
		Short: "Delete one metadata kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToUpper(args[1])
			auditMetadata(cmd, args[0], kind)

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			if err := zone.MetadataKind(kind).Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s of %s\n", kind, zone.ID())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func auditMetadata(cmd *cobra.Command, zone, kind string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: auditlog.ResourceMetadata,
		ResourceID:   kind,
		ResourceName: zone,
	}))
}
