package server

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"
)

func FlushCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flush-cache <domain>",
		Short: "Flush cached answers for a domain",
		Long: `Drop the packet and query cache entries for a domain and every name
below it.

Example:
  pdnsctl server flush-cache example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := dns.Fqdn(args[0])
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceZone,
				ResourceID:   name,
				ResourceName: "cache",
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			count, err := svc.Server().FlushCache(cmd.Context(), name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Flushed %d cache entries for %s\n", count, name)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
