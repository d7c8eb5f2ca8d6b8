package cmdutil

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/pdnsctl/internal/auditlog"
)

// Audit marks cmd as mutating and names the object it acts on. The root
// command records an audit entry for every command marked this way.
func Audit(cmd *cobra.Command, resourceType, id string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		ResourceType: resourceType,
		ResourceID:   id,
	}))
}
