package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry represents a persisted audit event.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Server       string    `json:"server,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// NewEntry builds the entry for a command that started at start and
// finished with err.
func NewEntry(command string, args []string, meta Metadata, start time.Time, err error) *AuditEntry {
	entry := &AuditEntry{
		Timestamp:    start.UTC(),
		Command:      command,
		Server:       meta.Server,
		ResourceType: meta.ResourceType,
		ResourceID:   meta.ResourceID,
		ResourceName: meta.ResourceName,
		Outcome:      OutcomeSuccess,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if len(args) > 0 {
		entry.Args = joinArgs(SanitizeArgs(args))
	}
	if err != nil {
		entry.Outcome = OutcomeError
		entry.Detail = err.Error()
	}
	return entry
}

// Write saves entry in the default repository. Failures are ignored: an
// unwritable audit log never fails the command being audited.
func Write(entry *AuditEntry) {
	repo, err := Open()
	if err != nil {
		return
	}
	defer repo.Close()
	_ = repo.Save(entry)
}
