package zone

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/services"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func CheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <zone>...",
		Short: "Run the server's consistency check on zones",
		Long: `Run the server's consistency check on one or more zones. Zones are
checked concurrently; the command fails if any zone reports errors.

Example:
  pdnsctl zone check example.com example.org`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			svc, err := cmdutil.NewService(cmd, services.WithConcurrency(concurrency))
			if err != nil {
				return err
			}

			var results []services.ZoneCheck
			err = cmdutil.Run(cmd, fmt.Sprintf("Checking %d zone(s)", len(args)), func(ctx context.Context) error {
				var checkErr error
				results, checkErr = svc.CheckZones(ctx, args...)
				return checkErr
			})
			if err != nil {
				return err
			}

			if output == cmdutil.FormatJSON {
				if err := cmdutil.WriteJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				w := cmdutil.NewTable(cmd.OutOrStdout(), "ZONE", "SERIAL", "RRSETS", "RESULT", "ERRORS")
				for _, r := range results {
					errs := "-"
					if len(r.Errors) > 0 {
						errs = strings.Join(r.Errors, "; ")
					}
					fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", r.Zone, r.Serial, r.RRsets, styles.CheckResult(r.OK()), errs)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			failed := 0
			for _, r := range results {
				if !r.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d zone(s) failed the check", failed, len(results))
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("concurrency", services.DefaultConcurrency, "Number of zones checked at once")
	cmdutil.AddOutputFlag(cmd)
	return cmd
}
