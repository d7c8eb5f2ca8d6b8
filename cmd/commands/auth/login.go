package auth

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/cmd/commands/cmdutil"
	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
	"nathanbeddoewebdev/pdnsctl/internal/tui"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API key for a PowerDNS host",
		Long: `Store the API key for a PowerDNS host in the local keychain.

The key is read from --api-key, from a prompt on a terminal, or from the
first line of stdin otherwise.

Examples:
  pdnsctl auth login --host ns1.example.net
  echo "$KEY" | pdnsctl auth login --host 192.0.2.53`,
		Args:         cobra.NoArgs,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("api-key", "", "API key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	conn, err := cmdutil.Resolve(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: auditlog.ResourceConfig,
		ResourceID:   "api-key",
		ResourceName: conn.Host,
	}))

	key, _ := cmd.Flags().GetString("api-key")
	key = strings.TrimSpace(key)
	if key == "" {
		if tui.IsInteractive() {
			key, err = tui.PromptAPIKey(conn.Host)
		} else {
			key, err = readLine(cmd)
		}
		if err != nil {
			return err
		}
	}
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := cmdutil.StoreFactory().SetKey(conn.Host, key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", conn.Host)
	return nil
}

func readLine(cmd *cobra.Command) (string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
