package domain

import "errors"

// Sentinel errors shared by every layer that talks to a PowerDNS server.
// The HTTP client wraps these so the CLI can branch on error categories
// with errors.Is instead of inspecting status codes.
//
//	return fmt.Errorf("failed to delete zone: %w", domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested server, zone or sub-resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the X-API-Key was missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the server or a fronting proxy throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a uniqueness conflict, such as creating a zone
	// that already exists.
	ErrConflict = errors.New("conflict")
)
