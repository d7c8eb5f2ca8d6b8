package zone

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <zone>",
		Short: "Show a zone",
		Long: `Show the settings of a zone. Use "pdnsctl record list" for its records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			z, err := svc.GetZone(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), z)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Title.Render(z.Name))
			fmt.Fprintln(out, styles.Label.Render("Kind:")+" "+styles.KindStyle(z.Kind).Render(z.Kind))
			fmt.Fprintln(out, styles.Field("Serial", strconv.FormatUint(uint64(z.Serial), 10)))
			fmt.Fprintln(out, styles.Field("Notified serial", strconv.FormatUint(uint64(z.NotifiedSerial), 10)))
			fmt.Fprintln(out, styles.Field("Masters", strings.Join(z.Masters, ", ")))
			fmt.Fprintln(out, styles.Field("DNSSEC", strconv.FormatBool(z.DNSSEC)))
			fmt.Fprintln(out, styles.Field("SOA-EDIT-API", z.SOAEditAPI))
			fmt.Fprintln(out, styles.Field("Account", z.Account))
			fmt.Fprintln(out, styles.Field("RRsets", strconv.Itoa(len(z.RRsets))))
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
