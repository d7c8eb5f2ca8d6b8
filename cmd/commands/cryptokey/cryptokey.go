// Package cryptokey implements "pdnsctl cryptokey", which manages the
// DNSSEC keys of a zone.
package cryptokey

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/pdns"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/tui/styles"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cryptokey",
		Aliases: []string{"dnssec"},
		Short:   "Manage DNSSEC keys",
	}

	cmdutil.AddConnectionFlags(cmd)
	cmd.AddCommand(listCommand())
	cmd.AddCommand(showCommand())
	cmd.AddCommand(createCommand())
	cmd.AddCommand(activeCommand("activate", "Activate a key", true))
	cmd.AddCommand(activeCommand("deactivate", "Deactivate a key", false))
	cmd.AddCommand(deleteCommand())

	return cmd
}

func listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <zone>",
		Short: "List the DNSSEC keys of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			keys, err := zone.CryptoKeys(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), keys)
			}

			if len(keys) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No DNSSEC keys for %s.\n", zone.ID())
				return nil
			}
			w := cmdutil.NewTable(cmd.OutOrStdout(), "ID", "TYPE", "ALGORITHM", "BITS", "ACTIVE")
			for _, k := range keys {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", k.ID, k.KeyType, k.Algorithm, bits(k.Bits), k.Active)
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <zone> <id>",
		Short: "Show one DNSSEC key with its DNSKEY and DS records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.OutputFormat(cmd)
			if err != nil {
				return err
			}
			handle, err := keyHandle(cmd, args)
			if err != nil {
				return err
			}
			key, err := handle.Get(cmd.Context())
			if err != nil {
				return err
			}
			if output == cmdutil.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), key)
			}
			printKey(cmd, key)
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)
	return cmd
}

func createCommand() *cobra.Command {
	var (
		keyType   string
		algorithm string
		bits      int
		active    bool
	)

	cmd := &cobra.Command{
		Use:   "create <zone>",
		Short: "Generate a DNSSEC key",
		Long: `Generate a new DNSSEC key for a zone. The server picks the algorithm's
default key size when --bits is not given.

Examples:
  pdnsctl cryptokey create example.com --active
  pdnsctl cryptokey create example.com --type ksk --algorithm RSASHA256 --bits 2048`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyType = strings.ToLower(strings.TrimSpace(keyType))
			switch keyType {
			case "ksk", "zsk", "csk":
			default:
				return fmt.Errorf("%w: --type must be ksk, zsk or csk, got %q", domain.ErrValidation, keyType)
			}
			if bits < 0 {
				return fmt.Errorf("%w: --bits must not be negative", domain.ErrValidation)
			}
			cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
				ResourceType: auditlog.ResourceCryptoKey,
				ResourceName: args[0],
			}))

			svc, err := cmdutil.NewService(cmd)
			if err != nil {
				return err
			}
			zone, err := svc.Zone(args[0])
			if err != nil {
				return err
			}
			key, err := zone.CreateCryptoKey(cmd.Context(), domain.CryptoKey{
				KeyType:   keyType,
				Algorithm: strings.ToUpper(algorithm),
				Bits:      bits,
				Active:    active,
			})
			if err != nil {
				return err
			}
			cmdutil.Audit(cmd, auditlog.ResourceCryptoKey, strconv.Itoa(key.ID))

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d for %s\n", key.KeyType, key.ID, zone.ID())
			for _, ds := range key.DS {
				fmt.Fprintf(cmd.OutOrStdout(), "DS %s\n", ds)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&keyType, "type", "csk", "Key type: ksk, zsk or csk")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "DNSSEC algorithm, e.g. ECDSAP256SHA256 (server default when empty)")
	cmd.Flags().IntVar(&bits, "bits", 0, "Key size in bits (server default when 0)")
	cmd.Flags().BoolVar(&active, "active", false, "Activate the key immediately")

	return cmd
}

func activeCommand(use, short string, active bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <zone> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auditKey(cmd, args)
			handle, err := keyHandle(cmd, args)
			if err != nil {
				return err
			}
			if err := handle.Change(cmd.Context(), active); err != nil {
				return err
			}
			state := "Deactivated"
			if active {
				state = "Activated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s key %d\n", state, handle.ID())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <zone> <id>",
		Short: "Delete a DNSSEC key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auditKey(cmd, args)
			handle, err := keyHandle(cmd, args)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Delete DNSSEC key %d of %s?", handle.ID(), args[0])
			if err := cmdutil.Confirm(cmd, title, "Removing an active key can break validation of the zone."); err != nil {
				return err
			}
			if err := handle.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted key %d\n", handle.ID())
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddYesFlag(cmd)
	return cmd
}

func keyHandle(cmd *cobra.Command, args []string) (*pdns.CryptoKey, error) {
	id, err := parseKeyID(args[1])
	if err != nil {
		return nil, err
	}
	svc, err := cmdutil.NewService(cmd)
	if err != nil {
		return nil, err
	}
	zone, err := svc.Zone(args[0])
	if err != nil {
		return nil, err
	}
	return zone.CryptoKey(id), nil
}

func parseKeyID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: key id %q must be a positive number", domain.ErrValidation, s)
	}
	return id, nil
}

func auditKey(cmd *cobra.Command, args []string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: auditlog.ResourceCryptoKey,
		ResourceID:   args[1],
		ResourceName: args[0],
	}))
}

func printKey(cmd *cobra.Command, k *domain.CryptoKey) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Key %d", k.ID)))
	fmt.Fprintln(w, styles.Field("Type", k.KeyType))
	fmt.Fprintln(w, styles.Field("Algorithm", k.Algorithm))
	fmt.Fprintln(w, styles.Field("Bits", bits(k.Bits)))
	fmt.Fprintln(w, styles.Field("Active", strconv.FormatBool(k.Active)))
	fmt.Fprintln(w, styles.Field("DNSKEY", k.DNSKey))
	for _, ds := range k.DS {
		fmt.Fprintln(w, styles.Field("DS", ds))
	}
}

func bits(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
