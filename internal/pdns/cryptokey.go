package pdns

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// CryptoKey is a handle on one DNSSEC key of a zone.
type CryptoKey struct {
	resource
	id int
}

// ID returns the key id.
func (k *CryptoKey) ID() int {
	return k.id
}

// Get fetches the key including its private material.
func (k *CryptoKey) Get(ctx context.Context) (*domain.CryptoKey, error) {
	var out domain.CryptoKey
	if err := k.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get cryptokey %d: %w", k.id, err)
	}
	return &out, nil
}

// Change activates or deactivates the key.
func (k *CryptoKey) Change(ctx context.Context, active bool) error {
	if err := k.change(ctx, domain.CryptoKey{Active: active}, nil); err != nil {
		return fmt.Errorf("failed to change cryptokey %d: %w", k.id, err)
	}
	return nil
}

// Delete removes the key.
func (k *CryptoKey) Delete(ctx context.Context) error {
	if err := k.delete(ctx); err != nil {
		return fmt.Errorf("failed to delete cryptokey %d: %w", k.id, err)
	}
	return nil
}
