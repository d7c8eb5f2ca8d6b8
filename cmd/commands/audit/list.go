package audit

import (
	"fmt"
	"time"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries, newest first.

Examples:
  pdnsctl audit list
  pdnsctl audit list --limit 50
  pdnsctl audit list --resource-type rrset
  pdnsctl audit list --command "pdnsctl zone delete" -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().String("server", "", "Filter by PowerDNS host and server id")
	cmd.Flags().String("resource-type", "", "Filter by resource type (zone, rrset, metadata, cryptokey, override, config)")
	cmd.Flags().String("resource-id", "", "Filter by resource id")
	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	output, err := cmdutil.OutputFormat(cmd)
	if err != nil {
		return err
	}

	filter := auditlog.Filter{Limit: limit}
	filter.Command, _ = cmd.Flags().GetString("command")
	filter.Server, _ = cmd.Flags().GetString("server")
	filter.ResourceType, _ = cmd.Flags().GetString("resource-type")
	filter.ResourceID, _ = cmd.Flags().GetString("resource-id")

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.List(filter)
	if err != nil {
		return err
	}

	if output == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := cmdutil.NewTable(cmd.OutOrStdout(), "TIME", "COMMAND", "OUTCOME", "DURATION", "SERVER", "RESOURCE", "DETAIL")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Command,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			orDash(entry.Server),
			formatResource(entry),
			orDash(entry.Detail),
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// formatResource renders type:id (name), skipping the parts that are empty.
func formatResource(entry auditlog.AuditEntry) string {
	resource := entry.ResourceType
	if entry.ResourceID != "" {
		if resource != "" {
			resource += ":"
		}
		resource += entry.ResourceID
	}
	if entry.ResourceName != "" {
		if resource != "" {
			resource += " (" + entry.ResourceName + ")"
		} else {
			resource = entry.ResourceName
		}
	}
	return orDash(resource)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
