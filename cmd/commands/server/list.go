package server

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the servers exposed by the API",
		Long: `List the PowerDNS daemons exposed by the API. An authoritative
server normally exposes a single server called "localhost".`,
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

			servers, err := svc.Client().Servers(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), servers)
			}

			if len(servers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No servers found.")
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "ID", "DAEMON", "VERSION", "URL")
			for _, s := range servers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.DaemonType, s.Version, s.URL)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}
