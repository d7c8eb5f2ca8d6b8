package server

import (
	"fmt"
	"slices"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/spf13/cobra"
)

// ConfigCommand returns the "server config" group. Not to be confused with
// "pdnsctl config", which manages the local pdnsctl settings.
func ConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change server configuration settings",
	}

	cmd.AddCommand(configListCommand())
	cmd.AddCommand(configGetCommand())
	cmd.AddCommand(configSetCommand())

	return cmd
}

func configListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
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
			settings, err := svc.Server().Config(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), settings)
			}

			names := make([]string, 0, len(settings))
			for name := range settings {
				names = append(names, name)
			}
			slices.Sort(names)

			w := cmdutil.NewTable(cmd.OutOrStdout(), "NAME", "VALUE")
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%s\n", name, settings[name])
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func configGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print one configuration setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			setting, err := svc.Server().ConfigSetting(args[0]).Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), setting.Value)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func configSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change one configuration setting",
		Long: `Change one configuration setting. PowerDNS only accepts a few settings
through the API, such as allow-axfr-ips.

Example:
  pdnsctl server config set allow-axfr-ips 192.0.2.0/24`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceConfig,
				ResourceID:   args[0],
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := svc.Server().ConfigSetting(args[0]).Change(cmd.Context(), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", args[0], args[1])
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
