package server

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/tui"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func SearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search zones, records and comments",
		Long: `Search zone names, record names, record contents and comments.
"*" matches any run of characters and "?" a single character.

Examples:
  pdnsctl server search 'www*'
  pdnsctl server search 192.0.2 --type record --max 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("max")
			objectType, _ := cmd.Flags().GetString("type")
			switch objectType {
			case "", "all", "zone", "record", "comment":
			default:
				return fmt.Errorf("--type must be one of all, zone, record or comment, got %q", objectType)
			}

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			results, err := svc.Server().SearchData(cmd.Context(), args[0], limit, objectType)
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), results)
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "KIND", "NAME", "ZONE", "TYPE", "CONTENT", "STATE")
			width := tui.Width() / 3
			for _, r := range results {
				zone := r.Zone
				if zone == "" {
					zone = r.ZoneID
				}
				state := "-"
				if r.ObjectType == "record" {
					state = styles.RecordState(r.Disabled)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ObjectType, r.Name, zone, dash(r.Type), dash(tui.Truncate(r.Content, width)), state)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("max", 100, "Maximum number of results")
	cmd.Flags().String("type", "", "Restrict to all, zone, record or comment")
	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func SearchLogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search-log <query>",
		Short: "Search the server log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			lines, err := svc.Server().SearchLog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
