package zone

import (
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/services"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <zone>",
		Short: "Create a zone",
		Long: `Create a zone. PowerDNS generates the SOA record and the NS records
for every --nameserver.

Examples:
  pdnsctl zone create example.com --nameserver ns1.example.net --nameserver ns2.example.net
  pdnsctl zone create example.org --kind slave --master 192.0.2.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			nameservers, _ := cmd.Flags().GetStringSlice("nameserver")
			masters, _ := cmd.Flags().GetStringSlice("master")
			cmdutil.Audit(cmd, auditlog.ResourceZone, args[0])

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			z, err := svc.CreateZone(cmd.Context(), services.CreateZoneOpts{
				Name:        args[0],
				Kind:        kind,
				Nameservers: nameservers,
				Masters:     masters,
			})
			if err != nil {
				return err
			}
			cmdutil.Audit(cmd, "", z.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "%s zone %s (%s)\n", styles.SuccessText.Render("Created"), z.Name, z.Kind)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("kind", "native", "Zone kind: native, master or slave")
	cmd.Flags().StringSlice("nameserver", nil, "Nameserver to create NS records for (repeatable)")
	cmd.Flags().StringSlice("master", nil, "Primary to transfer from, for slave zones (repeatable)")
	return cmd
}
