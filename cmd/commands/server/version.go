package server

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func APIVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-version",
		Short: "Show the API schema version in use",
		Long: `Show the API schema version pdnsctl talks to the endpoint with.
Version 0 is the unversioned API of PowerDNS 3.x; 1 is served under /api/v1.
The version is detected unless pinned with --api-version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			client := svc.Client()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: API schema version %d\n", client.BaseURL(), client.Version())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
