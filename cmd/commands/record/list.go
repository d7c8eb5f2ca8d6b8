package record

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/tui"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <zone>",
		Short: "List the records of a zone",
		Long: `List the records of a zone, one line per record.

Examples:
  pdnsctl record list example.com
  pdnsctl record list example.com --name www --type A
  pdnsctl record list example.com -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			rrtype, _ := cmd.Flags().GetString("type")

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			rrsets, err := svc.ListRRsets(cmd.Context(), args[0], name, rrtype)
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), rrsets)
			}

			if len(rrsets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "NAME", "TYPE", "TTL", "CONTENT", "STATE")
			width := tui.Width() / 2
			for _, r := range rrsets {
				for _, rec := range r.Records {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
						r.Name, r.Type, r.TTL, tui.Truncate(rec.Content, width), styles.RecordState(rec.Disabled))
				}
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("name", "", "Only show records with this owner name")
	cmd.Flags().String("type", "", "Only show records of this type")
	cmdutil.AddOutputFlag(cmd)
	return cmd
}
