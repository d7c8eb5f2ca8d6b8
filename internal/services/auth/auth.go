// Package auth stores PowerDNS API keys in the OS keychain, one entry per
// API host.
package auth

import (
	"errors"
	"os"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/util"
)

const ServiceName = "pdnsctl"

// EnvAPIKey is consulted before the keychain.
const EnvAPIKey = "PDNS_API_KEY"

var ErrKeyNotFound = errors.New("API key not found")

type Store interface {
	SetKey(host string, key string) error
	GetKey(host string) (string, error)
	DeleteKey(host string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeHost normalizes an API host for consistent key lookup.
func NormalizeHost(host string) string {
	return strings.TrimSuffix(util.NormalizeKey(host), ".")
}

// Source says where ResolveKey found the key.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keychain"
)

// ResolveKey returns the API key for host from the PDNS_API_KEY environment
// variable or, when that is unset, from store.
func ResolveKey(store Store, host string) (string, Source, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}
	key, err := store.GetKey(host)
	if err != nil {
		return "", "", err
	}
	return key, SourceKeyring, nil
}
