package auditlog

import "context"

// Resource types recorded for PowerDNS objects.
const (
	ResourceZone      = "zone"
	ResourceRRset     = "rrset"
	ResourceMetadata  = "metadata"
	ResourceCryptoKey = "cryptokey"
	ResourceConfig    = "config"
	ResourceOverride  = "override"
)

// Metadata names the object a command acted on.
type Metadata struct {
	Server       string
	ResourceType string
	ResourceID   string
	ResourceName string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Fields left empty
// keep the values of metadata already attached.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Server:       pick(meta.Server, existing.Server),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
