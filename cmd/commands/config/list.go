package config

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/config"

	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
)

// ListCommand returns the "config list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "Show all configuration values",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, err := config.Path()
	if err != nil {
		return err
	}

	node := gotree.New("Configuration:")
	node.Appendf("file: %s", path)
	for _, spec := range config.Keys {
		value := spec.Get(cfg)
		if value == "" {
			value = "[not set]"
		}
		node.Appendf("%s: %s", spec.Name, value)
	}
	fmt.Fprint(cmd.OutOrStdout(), node.String())
	return nil
}
