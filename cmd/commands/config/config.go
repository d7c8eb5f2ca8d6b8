package config

import (
	"nathanbeddoewebdev/pdnsctl/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pdnsctl configuration",
		Long: "View and modify persistent pdnsctl settings.\n\n" +
			"Configuration is stored at ~/.config/pdnsctl/config.json. Flags and\n" +
			"PDNS_* environment variables take precedence over it.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())
	cmd.AddCommand(ListCommand())

	return cmd
}
