package pdns

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Override is a handle on one server answer override.
type Override struct {
	resource
	id int
}

// ID returns the override id.
func (o *Override) ID() int {
	return o.id
}

// Get fetches the override.
func (o *Override) Get(ctx context.Context) (*domain.Override, error) {
	var out domain.Override
	if err := o.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get override %d: %w", o.id, err)
	}
	return &out, nil
}

// Change replaces the override.
func (o *Override) Change(ctx context.Context, info domain.Override) error {
	info.Type = "Override"
	info.ID = o.id
	if err := o.change(ctx, info, nil); err != nil {
		return fmt.Errorf("failed to change override %d: %w", o.id, err)
	}
	return nil
}

// Delete removes the override.
func (o *Override) Delete(ctx context.Context) error {
	if err := o.delete(ctx); err != nil {
		return fmt.Errorf("failed to delete override %d: %w", o.id, err)
	}
	return nil
}
