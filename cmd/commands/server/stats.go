package server

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/tui"

	"github.com/spf13/cobra"
)

func StatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show server statistics",
		Long: `Show the counters of the selected server.

Examples:
  pdnsctl server stats
  pdnsctl server stats --filter query`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			stats, err := svc.Server().Statistics(cmd.Context())
			if err != nil {
				return err
			}

			selected := make([]domain.StatisticItem, 0, len(stats))
			for _, s := range stats {
				if filter == "" || strings.Contains(s.Name, filter) {
					selected = append(selected, s)
				}
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), selected)
			}

			w := cmdutil.NewTable(cmd.OutOrStdout(), "NAME", "VALUE")
			width := tui.Width() / 2
			for _, s := range selected {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, tui.Truncate(s.ValueString(), width))
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("filter", "", "Only show statistics whose name contains this text")
	cmdutil.AddOutputFlag(cmd)
	return cmd
}
