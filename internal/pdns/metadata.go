package pdns

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Metadata is a handle on one metadata kind of a zone.
type Metadata struct {
	resource
	kind string
}

// Kind returns the metadata kind.
func (m *Metadata) Kind() string {
	return m.kind
}

// Get fetches the values of the kind.
func (m *Metadata) Get(ctx context.Context) ([]string, error) {
	var out domain.Metadata
	if err := m.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get metadata %s: %w", m.kind, err)
	}
	return out.Metadata, nil
}

// Change replaces the values of the kind.
func (m *Metadata) Change(ctx context.Context, values ...string) ([]string, error) {
	var out domain.Metadata
	if err := m.change(ctx, m.body(values), &out); err != nil {
		return nil, fmt.Errorf("failed to change metadata %s: %w", m.kind, err)
	}
	return out.Metadata, nil
}

// Create adds values to the kind, keeping the ones already set.
func (m *Metadata) Create(ctx context.Context, values ...string) ([]string, error) {
	var out domain.Metadata
	if err := m.create(ctx, m.body(values), &out); err != nil {
		return nil, fmt.Errorf("failed to create metadata %s: %w", m.kind, err)
	}
	return out.Metadata, nil
}

// Delete removes every value of the kind.
func (m *Metadata) Delete(ctx context.Context) error {
	if err := m.delete(ctx); err != nil {
		return fmt.Errorf("failed to delete metadata %s: %w", m.kind, err)
	}
	return nil
}

func (m *Metadata) body(values []string) domain.Metadata {
	if values == nil {
		values = []string{}
	}
	return domain.Metadata{Type: "Metadata", Kind: m.kind, Metadata: values}
}
