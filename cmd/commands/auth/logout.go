package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/services/auth"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key for a PowerDNS host",
		Long: `Remove the stored API key for a PowerDNS host from the local keychain.

Example:
  pdnsctl auth logout --host ns1.example.net`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceConfig,
				ResourceID:   "api-key",
				ResourceName: conn.Host,
			}))

			err = cmdutil.StoreFactory().DeleteKey(conn.Host)
			switch {
			case errors.Is(err, auth.ErrKeyNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No API key stored for %s\n", conn.Host)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove API key: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", conn.Host)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
