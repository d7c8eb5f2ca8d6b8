package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/services/auth"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where the API key for a host comes from",
		Long: `Show whether an API key is available for the selected host.

Example:
  pdnsctl auth status --host ns1.example.net`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := cmdutil.Resolve(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, source, err := auth.ResolveKey(cmdutil.StoreFactory(), conn.Host)
			switch {
			case err == nil:
				fmt.Fprintf(out, "%s: %s (%s)\n", conn.Host, styles.SuccessText.Render("logged in"), source)
			case errors.Is(err, auth.ErrKeyNotFound):
				fmt.Fprintf(out, "%s: %s\n", conn.Host, styles.WarningText.Render("not logged in"))
			default:
				fmt.Fprintf(out, "%s: %s (%v)\n", conn.Host, styles.ErrorText.Render("error"), err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
