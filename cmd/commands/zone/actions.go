package zone

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns"

	"github.com/spf13/cobra"
)

// zoneAction builds a command that triggers one server-side action on a zone.
func zoneAction(use, short, long, done string, action func(ctx context.Context, z *pdns.Zone) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <zone>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.Audit(cmd, auditlog.ResourceZone, args[0])

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			z, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			if err := action(cmd.Context(), z); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s for zone %s\n", done, z.ID())
			return nil
		},
		SilenceUsage: true,
	}
	return cmd
}

func NotifyCommand() *cobra.Command {
	return zoneAction("notify", "Send NOTIFY to the zone's secondaries",
		"Queue a DNS NOTIFY to every secondary of a Master zone.",
		"Notification queued",
		func(ctx context.Context, z *pdns.Zone) error { return z.Notify(ctx) })
}

func AXFRRetrieveCommand() *cobra.Command {
	return zoneAction("axfr-retrieve", "Retrieve a slave zone from its master",
		"Ask the server to transfer a Slave zone from its master now.",
		"Transfer requested",
		func(ctx context.Context, z *pdns.Zone) error { return z.AXFRRetrieve(ctx) })
}

func RectifyCommand() *cobra.Command {
	return zoneAction("rectify", "Rectify a DNSSEC zone",
		"Recompute the ordering and auth fields of a DNSSEC-signed zone.",
		"Rectified",
		func(ctx context.Context, z *pdns.Zone) error { return z.Rectify(ctx) })
}
