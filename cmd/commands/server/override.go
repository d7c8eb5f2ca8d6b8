package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"
)

func OverrideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage answer overrides",
		Long: `Manage server answer overrides, which replace or ignore the answers
for a domain regardless of zone data.`,
	}

	cmd.AddCommand(overrideListCommand())
	cmd.AddCommand(overrideShowCommand())
	cmd.AddCommand(overrideCreateCommand())
	cmd.AddCommand(overrideDeleteCommand())

	return cmd
}

func overrideListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List answer overrides",
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
			overrides, err := svc.Server().Overrides(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), overrides)
			}

			if len(overrides) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No overrides found.")
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "ID", "DOMAIN", "OVERRIDE", "TYPE", "VALUES", "UNTIL")
			for _, o := range overrides {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.Domain, o.Override, dash(o.RRType), dash(strings.Join(o.Values, ", ")), formatUnix(o.Until))
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func overrideShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one answer override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			id, err := parseOverrideID(args[0])
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			o, err := svc.Server().Override(id).Get(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), o)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Override %d", o.ID)))
			fmt.Fprintln(out, styles.Field("Domain", o.Domain))
			fmt.Fprintln(out, styles.Field("Override", o.Override))
			fmt.Fprintln(out, styles.Field("Type", o.RRType))
			fmt.Fprintln(out, styles.Field("Values", strings.Join(o.Values, ", ")))
			fmt.Fprintln(out, styles.Field("Created", formatUnix(o.Created)))
			fmt.Fprintln(out, styles.Field("Until", formatUnix(o.Until)))
			fmt.Fprintln(out, styles.Field("Reason", o.Reason))
			fmt.Fprintln(out, styles.Field("User", o.User))
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func overrideCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <domain>",
		Short: "Create an answer override",
		Long: `Create an answer override for a domain.

Examples:
  pdnsctl server override create blocked.example --override ignore --for 24h
  pdnsctl server override create www.example.com --override replace --type A --value 192.0.2.10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("override")
			rrtype, _ := cmd.Flags().GetString("type")
			values, _ := cmd.Flags().GetStringSlice("value")
			reason, _ := cmd.Flags().GetString("reason")
			lifetime, _ := cmd.Flags().GetDuration("for")

			o := domain.Override{
				Override: kind,
				Domain:   dns.Fqdn(args[0]),
				RRType:   strings.ToUpper(rrtype),
				Values:   values,
				Reason:   reason,
			}
			if lifetime > 0 {
				o.Until = time.Now().Add(lifetime).Unix()
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceOverride,
				ResourceName: o.Domain,
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			created, err := svc.Server().CreateOverride(cmd.Context(), o)
			if err != nil {
				return err
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceID: strconv.Itoa(created.ID),
			}))

			fmt.Fprintf(cmd.OutOrStdout(), "Created override %d for %s\n", created.ID, created.Domain)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("override", "replace", "Override kind, e.g. replace or ignore")
	cmd.Flags().String("type", "", "Record type the override applies to")
	cmd.Flags().StringSlice("value", nil, "Answer value (repeatable)")
	cmd.Flags().String("reason", "", "Free-form reason stored with the override")
	cmd.Flags().Duration("for", 0, "Expire the override after this long")
	return cmd
}

func overrideDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an answer override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOverrideID(args[0])
			if err != nil {
				return err
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceOverride,
				ResourceID:   strconv.Itoa(id),
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			if err := svc.Server().Override(id).Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted override %d\n", id)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func parseOverrideID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("override id must be a positive integer, got %q", s)
	}
	return id, nil
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Local().Format("2006-01-02 15:04:05")
}
