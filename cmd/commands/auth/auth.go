package auth

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage PowerDNS API keys",
		Long: `Manage PowerDNS API keys.

Keys are stored in the OS keychain, one per API host. The PDNS_API_KEY
environment variable takes precedence over the keychain.`,
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
