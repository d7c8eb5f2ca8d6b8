package pdns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Zone is a handle on /servers/{server}/zones/{id}.
type Zone struct {
	resource
	id string
}

// ID returns the zone id.
func (z *Zone) ID() string {
	return z.id
}

// Get fetches the zone including its RRsets.
func (z *Zone) Get(ctx context.Context) (*domain.Zone, error) {
	var out domain.Zone
	if err := z.get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to get zone %s: %w", z.id, err)
	}
	return &out, nil
}

// Snapshot fetches the zone and returns its RRsets in the shape the
// changeset builder merges against. Both the nested and the flat record
// layouts are understood.
func (z *Zone) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if z.err != nil {
		return nil, z.err
	}
	body, err := z.c.raw(ctx, http.MethodGet, z.path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zone %s: %w", z.id, err)
	}
	snap, err := domain.ParseSnapshot(z.c.version, body)
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w", z.id, err)
	}
	return snap, nil
}

// Create creates the zone. zone.Name defaults to the handle's id.
func (z *Zone) Create(ctx context.Context, zone domain.Zone) (*domain.Zone, error) {
	if zone.Name == "" {
		zone.Name = z.id
	}
	var out domain.Zone
	if err := z.create(ctx, zone, &out); err != nil {
		return nil, fmt.Errorf("failed to create zone %s: %w", zone.Name, err)
	}
	return &out, nil
}

// Change updates zone-level attributes such as kind, masters or soa_edit_api.
func (z *Zone) Change(ctx context.Context, zone domain.Zone) error {
	if err := z.change(ctx, zone, nil); err != nil {
		return fmt.Errorf("failed to change zone %s: %w", z.id, err)
	}
	return nil
}

// Delete removes the zone and all its data.
func (z *Zone) Delete(ctx context.Context) error {
	if err := z.delete(ctx); err != nil {
		return fmt.Errorf("failed to delete zone %s: %w", z.id, err)
	}
	return nil
}

// Modify submits rrsets as one PATCH changeset. The rrsets are shaped for
// the client's schema version first. Submitting nothing is a no-op.
func (z *Zone) Modify(ctx context.Context, rrsets ...domain.RRset) error {
	if z.err != nil {
		return z.err
	}
	if len(rrsets) == 0 {
		return nil
	}
	cs, err := z.c.builder.Changeset(rrsets...)
	if err != nil {
		return fmt.Errorf("zone %s: %w", z.id, err)
	}
	if err := z.patch(ctx, cs); err != nil {
		return fmt.Errorf("failed to modify zone %s: %w", z.id, err)
	}
	return nil
}

// Notify sends DNS NOTIFY to the zone's slaves.
func (z *Zone) Notify(ctx context.Context) error {
	if err := z.action(ctx, "notify", nil); err != nil {
		return fmt.Errorf("failed to notify zone %s: %w", z.id, err)
	}
	return nil
}

// AXFRRetrieve asks a slave zone to transfer from its master now.
func (z *Zone) AXFRRetrieve(ctx context.Context) error {
	if err := z.action(ctx, "axfr-retrieve", nil); err != nil {
		return fmt.Errorf("failed to retrieve zone %s: %w", z.id, err)
	}
	return nil
}

// Rectify recomputes DNSSEC ordering and auth data of the zone.
func (z *Zone) Rectify(ctx context.Context) error {
	if err := z.action(ctx, "rectify", nil); err != nil {
		return fmt.Errorf("failed to rectify zone %s: %w", z.id, err)
	}
	return nil
}

// Export returns the zone in BIND format. Older servers wrap the text in
// a {"zone": "..."} object; both answers are accepted.
func (z *Zone) Export(ctx context.Context) (string, error) {
	exp := z.collection("export")
	if exp.err != nil {
		return "", exp.err
	}
	body, err := z.c.raw(ctx, http.MethodGet, exp.path)
	if err != nil {
		return "", fmt.Errorf("failed to export zone %s: %w", z.id, err)
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Zone *string `json:"zone"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Zone != nil {
			return *wrapped.Zone, nil
		}
	}
	return string(body), nil
}

// Check runs the server-side zone check and returns its report.
func (z *Zone) Check(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := z.collection("check").get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to check zone %s: %w", z.id, err)
	}
	return out, nil
}

// Metadata returns every metadata kind of the zone with its values.
func (z *Zone) Metadata(ctx context.Context) (map[string][]string, error) {
	var items []domain.Metadata
	if err := z.collection("metadata").get(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to list metadata of zone %s: %w", z.id, err)
	}
	out := make(map[string][]string, len(items))
	for _, item := range items {
		out[item.Kind] = item.Metadata
	}
	return out, nil
}

// MetadataKind returns a handle on one metadata kind, such as ALLOW-AXFR-FROM.
func (z *Zone) MetadataKind(kind string) *Metadata {
	return &Metadata{resource: z.member("metadata", kind), kind: kind}
}

// CryptoKeys lists the zone's DNSSEC keys without private material.
func (z *Zone) CryptoKeys(ctx context.Context) ([]domain.CryptoKey, error) {
	var out []domain.CryptoKey
	if err := z.collection("cryptokeys").get(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to list cryptokeys of zone %s: %w", z.id, err)
	}
	return out, nil
}

// CryptoKey returns a handle on one DNSSEC key.
func (z *Zone) CryptoKey(id int) *CryptoKey {
	return &CryptoKey{resource: z.member("cryptokeys", strconv.Itoa(id)), id: id}
}

// CreateCryptoKey generates a key (or imports key.PrivateKey when set).
func (z *Zone) CreateCryptoKey(ctx context.Context, key domain.CryptoKey) (*domain.CryptoKey, error) {
	var out domain.CryptoKey
	if err := z.collection("cryptokeys").post(ctx, key, &out); err != nil {
		return nil, fmt.Errorf("failed to create cryptokey for zone %s: %w", z.id, err)
	}
	return &out, nil
}
