// Package path builds PowerDNS resource paths.
package path

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

const apiRoot = "/api"

// Resolve joins a child resource onto its parent's path:
// parent + "/" + kind, followed by "/" + id when an id is given.
// IDs are path-escaped; ordinary zone and server names pass through unchanged.
func Resolve(parent, kind string, id ...string) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("%w: resource kind is required under %q", domain.ErrValidation, parent)
	}

	p := parent + "/" + kind
	if len(id) > 0 && id[0] != "" {
		p += "/" + url.PathEscape(id[0])
	}
	return p, nil
}

// PrefixFor returns the version prefix to put in front of rawPath.
// Schema 0 has no prefix, and a path that already starts with /api is
// taken as complete, which makes the prefix idempotent.
func PrefixFor(version domain.SchemaVersion, rawPath string) string {
	if version.Legacy() || strings.HasPrefix(rawPath, apiRoot) {
		return ""
	}
	return apiRoot + "/v" + strconv.Itoa(int(version))
}

// URI returns rawPath with its version prefix applied.
func URI(version domain.SchemaVersion, rawPath string) string {
	return PrefixFor(version, rawPath) + rawPath
}
