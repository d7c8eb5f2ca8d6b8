package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set or clear a configuration value",
		Long: "Set a persistent configuration value. Omitting the value clears the key.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  pdnsctl config set host ns1.example.net\n" +
			"  pdnsctl config set api-version 1\n" +
			"  pdnsctl config set notify-url discord://token@channel\n" +
			"  pdnsctl config set api-version         # back to auto-detect",
		Args:         cobra.RangeArgs(1, 2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}
	value := ""
	if len(args) == 2 {
		value = args[1]
	}

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: auditlog.ResourceConfig,
		ResourceID:   spec.Name,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := spec.Set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if current := spec.Get(cfg); current != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, current)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
	}
	return nil
}
