package record

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/plan"

	"github.com/spf13/cobra"
)

func ApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply -f <plan.yaml>",
		Short: "Apply a YAML change plan to a zone",
		Long: `Apply a change plan to a zone in one PATCH. Either every change is
applied or none is.

A plan looks like:

  zone: example.com.
  changes:
    - op: add
      name: www
      type: A
      records: [192.0.2.1]
    - op: delete
      name: old
      type: CNAME

Operations are add, replace, remove and delete. With --dry-run the changes
are validated and printed but not sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			p, err := plan.Load(file)
			if err != nil {
				return err
			}
			if dryRun {
				return printPlan(cmd, p)
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceZone,
				ResourceID:   p.Zone,
				ResourceName: file,
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			rrsets, err := svc.ApplyPlan(cmd.Context(), p)
			if err != nil {
				return err
			}

			w := cmdutil.NewTable(cmd.OutOrStdout(), "CHANGE", "NAME", "TYPE", "TTL", "RECORDS")
			for _, r := range rrsets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", r.ChangeType, r.Name, r.Type, r.TTL, len(r.Records))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d change(s) to %s\n", len(rrsets), p.Zone)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("file", "f", "", "Path to the plan file")
	cmd.Flags().Bool("dry-run", false, "Validate and print the plan without applying it")
	return cmd
}

func printPlan(cmd *cobra.Command, p *plan.Plan) error {
	w := cmdutil.NewTable(cmd.OutOrStdout(), "OP", "NAME", "TYPE", "TTL", "CONTENT")
	for _, c := range p.Changes {
		content := strings.Join(c.Contents(), ", ")
		if content == "" {
			content = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.Op, c.Name, strings.ToUpper(c.Type), c.TTL, content)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plan for %s is valid: %d change(s), nothing sent\n", p.Zone, len(p.Changes))
	return nil
}
