package record

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/services"

	"github.com/spf13/cobra"
)

// editCommand builds add, replace and remove, which share their arguments:
// zone, name, type and one or more contents.
func editCommand(use, short, long, verb string,
	edit func(*services.Service, context.Context, services.RecordOpts) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <zone> <name> <type> <content>...",
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetInt("ttl")
			disabled, _ := cmd.Flags().GetBool("disabled")
			if ttl < 0 {
				return fmt.Errorf("--ttl must not be negative")
			}

			opts := services.RecordOpts{
				Zone:     args[0],
				Name:     args[1],
				Type:     args[2],
				TTL:      ttl,
				Contents: args[3:],
				Disabled: disabled,
			}
			auditRRset(cmd, opts.Zone, opts.Name, opts.Type)

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := edit(svc, cmd.Context(), opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s) %s %s %s in %s\n",
				verb, len(opts.Contents), preposition(verb), opts.Name, strings.ToUpper(opts.Type), opts.Zone)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("ttl", 0, "TTL in seconds (default: keep the current TTL, 3600 for new RRsets)")
	cmd.Flags().Bool("disabled", false, "Store the records as disabled")
	return cmd
}

func AddCommand() *cobra.Command {
	return editCommand("add", "Add records to an RRset",
		`Add records to an RRset, keeping the records already there.

Examples:
  pdnsctl record add example.com www A 192.0.2.1 192.0.2.2
  pdnsctl record add example.com @ MX "10 mail" --ttl 3600`,
		"Added",
		(*services.Service).AddRecords)
}

func ReplaceCommand() *cobra.Command {
	return editCommand("replace", "Replace the records of an RRset",
		`Replace an RRset with exactly the given records.

Example:
  pdnsctl record replace example.com @ TXT "v=spf1 mx -all"`,
		"Set",
		(*services.Service).ReplaceRecords)
}

func RemoveCommand() *cobra.Command {
	return editCommand("remove", "Remove records from an RRset",
		`Remove the given records from an RRset and keep the others. Removing
the last record deletes the RRset.

Example:
  pdnsctl record remove example.com www A 192.0.2.2`,
		"Removed",
		(*services.Service).RemoveRecords)
}

func preposition(verb string) string {
	switch verb {
	case "Added":
		return "to"
	case "Removed":
		return "from"
	default:
		return "on"
	}
}

func auditRRset(cmd *cobra.Command, zone, name, rrtype string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: auditlog.ResourceRRset,
		ResourceID:   name + "/" + strings.ToUpper(rrtype),
		ResourceName: zone,
	}))
}
