package util

import (
	"fmt"
	"regexp"
)

// validIDChars matches only alphanumeric characters, hyphens, underscores and periods.
var validIDChars = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

// ValidateServerID checks that a PowerDNS server id is usable as a single
// URL path segment:
//   - Not empty
//   - Only alphanumeric characters, hyphens, underscores and periods
//   - First character must be alphanumeric
func ValidateServerID(id string) error {
	if id == "" {
		return fmt.Errorf("server id cannot be empty")
	}

	if !validIDChars.MatchString(id) {
		return fmt.Errorf("server id %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, underscores and periods are allowed)", id)
	}

	if !isAlphanumeric(id[0]) {
		return fmt.Errorf("server id must start with an alphanumeric character, got %q", string(id[0]))
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
