package zone

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zones, err := svc.ListZones(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), zones)
			}

			if len(zones) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No zones found.")
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "NAME", "KIND", "SERIAL", "DNSSEC", "MASTERS")
			for _, z := range zones {
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
					z.Name, styles.KindStyle(z.Kind).Render(z.Kind), z.Serial, z.DNSSEC, joinOrDash(z.Masters))
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}
