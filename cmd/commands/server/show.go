package server

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected server",
		Long: `Show the daemon type, version and URLs of the server selected with
--server (default localhost).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}

			info, err := svc.Server().Get(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Title.Render(info.ID))
			fmt.Fprintln(out, styles.Field("Daemon", info.DaemonType))
			fmt.Fprintln(out, styles.Field("Version", info.Version))
			fmt.Fprintln(out, styles.Field("URL", info.URL))
			fmt.Fprintln(out, styles.Field("Zones", info.ZonesURL))
			fmt.Fprintln(out, styles.Field("Config", info.ConfigURL))
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}
