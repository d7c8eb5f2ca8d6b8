// Package rrset builds PATCH changesets for PowerDNS zones.
//
// Every operation is a pure function of its arguments: the schema version
// held by the Builder, the caller's records and, for merges, a zone
// Snapshot. Nothing here performs I/O or mutates its inputs.
package rrset

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// Builder produces RRsets shaped for one API schema version.
type Builder struct {
	version domain.SchemaVersion
}

// NewBuilder returns a Builder for the given schema version.
func NewBuilder(version domain.SchemaVersion) Builder {
	return Builder{version: version}
}

// Version returns the schema version the builder shapes payloads for.
func (b Builder) Version() domain.SchemaVersion {
	return b.version
}

// Contents coerces bare content strings into enabled records.
func Contents(values ...string) []domain.Record {
	records := make([]domain.Record, len(values))
	for i, v := range values {
		records[i] = domain.Record{Content: v}
	}
	return records
}

// Replace returns a REPLACE RRset holding exactly records.
func (b Builder) Replace(name, rrtype string, ttl int, records []domain.Record) (domain.RRset, error) {
	if err := checkIdentity(name, rrtype); err != nil {
		return domain.RRset{}, err
	}
	if len(records) == 0 {
		return domain.RRset{}, fmt.Errorf("%w: replace %s %s: at least one record is required", domain.ErrValidation, name, rrtype)
	}
	if ttl <= 0 {
		return domain.RRset{}, fmt.Errorf("%w: replace %s %s: ttl must be positive", domain.ErrValidation, name, rrtype)
	}

	return b.Adapt(domain.RRset{
		Name:       name,
		Type:       rrtype,
		TTL:        ttl,
		ChangeType: domain.ChangeReplace,
		Records:    normalize(records),
	}), nil
}

// Delete returns a DELETE RRset for (name, type).
func (b Builder) Delete(name, rrtype string) (domain.RRset, error) {
	if err := checkIdentity(name, rrtype); err != nil {
		return domain.RRset{}, err
	}
	return domain.RRset{
		Name:       name,
		Type:       rrtype,
		ChangeType: domain.ChangeDelete,
		Records:    []domain.Record{},
	}, nil
}

// Append returns a REPLACE RRset holding the existing records of (name,
// type) in snap plus every new record whose content is not already present.
// When a content is already present the new record's disabled flag wins.
// A non-positive ttl keeps the existing RRset's TTL.
func (b Builder) Append(name, rrtype string, ttl int, records []domain.Record, snap *domain.Snapshot) (domain.RRset, error) {
	if err := checkIdentity(name, rrtype); err != nil {
		return domain.RRset{}, err
	}
	if snap == nil {
		return domain.RRset{}, fmt.Errorf("%w: append %s %s: no zone snapshot", domain.ErrSnapshotFormat, name, rrtype)
	}
	if len(records) == 0 {
		return domain.RRset{}, fmt.Errorf("%w: append %s %s: at least one record is required", domain.ErrValidation, name, rrtype)
	}

	existing, found := snap.Find(name, rrtype)
	if ttl <= 0 {
		if !found || existing.TTL <= 0 {
			return domain.RRset{}, fmt.Errorf("%w: append %s %s: ttl is required for a new rrset", domain.ErrValidation, name, rrtype)
		}
		ttl = existing.TTL
	}

	merged := normalize(existing.Records)
	index := make(map[string]int, len(merged)+len(records))
	for i, rec := range merged {
		index[rec.Content] = i
	}
	for _, rec := range normalize(records) {
		if i, ok := index[rec.Content]; ok {
			merged[i].Disabled = rec.Disabled
			continue
		}
		index[rec.Content] = len(merged)
		merged = append(merged, rec)
	}

	return b.Adapt(domain.RRset{
		Name:       name,
		Type:       rrtype,
		TTL:        ttl,
		ChangeType: domain.ChangeReplace,
		Records:    merged,
	}), nil
}

// RemoveRecords returns a REPLACE RRset holding the existing records of
// (name, type) minus those whose content appears in records. An absent
// RRset yields an empty record list, which PowerDNS applies as a removal.
func (b Builder) RemoveRecords(name, rrtype string, records []domain.Record, snap *domain.Snapshot) (domain.RRset, error) {
	if err := checkIdentity(name, rrtype); err != nil {
		return domain.RRset{}, err
	}
	if snap == nil {
		return domain.RRset{}, fmt.Errorf("%w: remove records %s %s: no zone snapshot", domain.ErrSnapshotFormat, name, rrtype)
	}

	drop := make(map[string]struct{}, len(records))
	for _, rec := range records {
		drop[rec.Content] = struct{}{}
	}

	existing, _ := snap.Find(name, rrtype)
	kept := []domain.Record{}
	for _, rec := range normalize(existing.Records) {
		if _, ok := drop[rec.Content]; ok {
			continue
		}
		kept = append(kept, rec)
	}

	return b.Adapt(domain.RRset{
		Name:       name,
		Type:       rrtype,
		TTL:        existing.TTL,
		ChangeType: domain.ChangeReplace,
		Records:    kept,
	}), nil
}

// RemoveAll returns one DELETE per RRset in snap, except the SOA and any
// NS RRset serving one of the nameservers in exceptions. Nameservers
// compare case-insensitively and with or without the trailing dot.
func (b Builder) RemoveAll(snap *domain.Snapshot, exceptions []string) ([]domain.RRset, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: remove all: no zone snapshot", domain.ErrSnapshotFormat)
	}

	keep := make(map[string]struct{}, len(exceptions))
	for _, ns := range exceptions {
		keep[canonicalHost(ns)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(snap.RRsets))
	var out []domain.RRset
	for _, existing := range snap.RRsets {
		if strings.EqualFold(existing.Type, domain.TypeSOA) {
			continue
		}
		if strings.EqualFold(existing.Type, domain.TypeNS) && servesAny(existing, keep) {
			continue
		}
		if _, ok := seen[existing.Key()]; ok {
			continue
		}
		seen[existing.Key()] = struct{}{}

		del, err := b.Delete(existing.Name, existing.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, del)
	}
	return out, nil
}

// Changeset adapts rrsets to the builder's schema version and checks that
// no (name, type) pair appears twice.
func (b Builder) Changeset(rrsets ...domain.RRset) (domain.Changeset, error) {
	cs := domain.Changeset{RRsets: make([]domain.RRset, len(rrsets))}
	for i, r := range rrsets {
		cs.RRsets[i] = b.Adapt(r)
	}
	if err := cs.Validate(); err != nil {
		return domain.Changeset{}, err
	}
	return cs, nil
}

func checkIdentity(name, rrtype string) error {
	if name == "" {
		return fmt.Errorf("%w: rrset name is required", domain.ErrValidation)
	}
	if rrtype == "" {
		return fmt.Errorf("%w: rrset type is required for %s", domain.ErrValidation, name)
	}
	return nil
}

// normalize copies records down to content, disabled and set-ptr.
func normalize(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, rec := range records {
		out[i] = domain.Record{Content: rec.Content, Disabled: rec.Disabled, SetPTR: rec.SetPTR}
	}
	return out
}

func servesAny(rrset domain.RRset, hosts map[string]struct{}) bool {
	for _, rec := range rrset.Records {
		if _, ok := hosts[canonicalHost(rec.Content)]; ok {
			return true
		}
	}
	return false
}

func canonicalHost(s string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
}
