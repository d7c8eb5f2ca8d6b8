package pdns

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Edit names an RRset and the records an operation applies to it.
// TTL may be zero when the operation keeps an existing RRset's TTL.
type Edit struct {
	Name    string
	Type    string
	TTL     int
	Records []domain.Record
}

// RRsetID identifies an RRset inside a zone.
type RRsetID struct {
	Name string
	Type string
}

// Add merges each edit's records into the zone's existing RRsets.
// Contents already present are kept once; their disabled flag follows the edit.
func (z *Zone) Add(ctx context.Context, edits ...Edit) error {
	snap, err := z.Snapshot(ctx)
	if err != nil {
		return err
	}

	rrsets := make([]domain.RRset, 0, len(edits))
	for _, e := range edits {
		r, err := z.c.builder.Append(e.Name, e.Type, e.TTL, e.Records, snap)
		if err != nil {
			return err
		}
		rrsets = append(rrsets, r)
	}
	return z.Modify(ctx, rrsets...)
}

// Update replaces each edited RRset with exactly the given records.
func (z *Zone) Update(ctx context.Context, edits ...Edit) error {
	rrsets := make([]domain.RRset, 0, len(edits))
	for _, e := range edits {
		r, err := z.c.builder.Replace(e.Name, e.Type, e.TTL, e.Records)
		if err != nil {
			return err
		}
		rrsets = append(rrsets, r)
	}
	return z.Modify(ctx, rrsets...)
}

// UpdateRecord removes old's records and adds next's in a single PATCH.
// When both name the same RRset the two steps are folded into one REPLACE.
func (z *Zone) UpdateRecord(ctx context.Context, old, next Edit) error {
	snap, err := z.Snapshot(ctx)
	if err != nil {
		return err
	}

	if next.TTL <= 0 {
		if existing, ok := snap.Find(next.Name, next.Type); ok {
			next.TTL = existing.TTL
		}
	}

	removed, err := z.c.builder.RemoveRecords(old.Name, old.Type, old.Records, snap)
	if err != nil {
		return err
	}
	added, err := z.c.builder.Append(next.Name, next.Type, next.TTL, next.Records, snap.With(removed))
	if err != nil {
		return err
	}

	if removed.Key() == added.Key() {
		return z.Modify(ctx, added)
	}
	return z.Modify(ctx, removed, added)
}

// Remove deletes whole RRsets.
func (z *Zone) Remove(ctx context.Context, ids ...RRsetID) error {
	rrsets := make([]domain.RRset, 0, len(ids))
	for _, id := range ids {
		r, err := z.c.builder.Delete(id.Name, id.Type)
		if err != nil {
			return err
		}
		rrsets = append(rrsets, r)
	}
	return z.Modify(ctx, rrsets...)
}

// RemoveRecords drops the given record contents from each edited RRset
// and leaves the other records in place.
func (z *Zone) RemoveRecords(ctx context.Context, edits ...Edit) error {
	snap, err := z.Snapshot(ctx)
	if err != nil {
		return err
	}

	rrsets := make([]domain.RRset, 0, len(edits))
	for _, e := range edits {
		r, err := z.c.builder.RemoveRecords(e.Name, e.Type, e.Records, snap)
		if err != nil {
			return err
		}
		rrsets = append(rrsets, r)
	}
	return z.Modify(ctx, rrsets...)
}

// RemoveAll deletes every RRset of the zone except the SOA and the NS
// RRsets serving one of nameservers. It returns how many RRsets were deleted.
func (z *Zone) RemoveAll(ctx context.Context, nameservers ...string) (int, error) {
	snap, err := z.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	rrsets, err := z.c.builder.RemoveAll(snap, nameservers)
	if err != nil {
		return 0, fmt.Errorf("zone %s: %w", z.id, err)
	}
	if err := z.Modify(ctx, rrsets...); err != nil {
		return 0, err
	}
	return len(rrsets), nil
}
