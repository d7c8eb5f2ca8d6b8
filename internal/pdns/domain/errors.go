package domain

import (
	"errors"

	shared "nathanbeddoewebdev/pdnsctl/internal/domain"
)

// Re-export shared sentinel errors so PowerDNS callers do not need to import
// the cross-domain package directly.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = shared.ErrNotFound

	// ErrUnauthorized indicates a missing or rejected API key.
	ErrUnauthorized = shared.ErrUnauthorized

	// ErrRateLimited indicates the request was throttled.
	ErrRateLimited = shared.ErrRateLimited

	// ErrConflict indicates a uniqueness conflict.
	ErrConflict = shared.ErrConflict
)

var (
	// ErrValidation is returned when a request is malformed before it is
	// sent: an empty record list for a REPLACE, a missing name or type,
	// an empty resource kind, or a repeated (name, type) pair in one changeset.
	ErrValidation = errors.New("validation failed")

	// ErrSnapshotFormat is returned when a zone body carries neither the
	// "rrsets" nor the "records" key. An unreadable zone is never treated
	// as an empty one.
	ErrSnapshotFormat = errors.New("unexpected zone snapshot format")

	// ErrUnprocessable wraps HTTP 422 answers, which PowerDNS uses for
	// semantically invalid changesets and zone data.
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrNonJSON indicates a successful response whose body could not be
	// decoded as JSON.
	ErrNonJSON = errors.New("non-JSON response")
)
