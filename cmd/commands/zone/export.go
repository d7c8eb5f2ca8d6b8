package zone

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/services"

	"github.com/spf13/cobra"
)

func ExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <zone>",
		Short: "Export a zone in BIND format",
		Long: `Print a zone in BIND zone file format.

With --validate the export is parsed before it is printed and the command
fails if it is not a valid zone file.

Example:
  pdnsctl zone export example.com --validate > example.com.zone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validate, _ := cmd.Flags().GetBool("validate")

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}

			var text string
			err = cmdutil.Run(cmd, "Exporting "+args[0], func(ctx context.Context) error {
				var exportErr error
				text, exportErr = svc.ExportZone(ctx, args[0])
				return exportErr
			})
			if err != nil {
				return err
			}

			if validate {
				count, err := services.ValidateExport(args[0], text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Export holds %d valid records\n", count)
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("validate", false, "Parse the export and fail if it is not a valid zone file")
	return cmd
}
