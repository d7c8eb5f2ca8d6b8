package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot is a read-only view of a zone's RRsets at one point in time.
// The builder consults it to merge new records with existing ones.
type Snapshot struct {
	RRsets []RRset
}

// Find returns the RRset with the given owner name and type.
func (s *Snapshot) Find(name, rrtype string) (RRset, bool) {
	if s == nil {
		return RRset{}, false
	}
	for _, rrset := range s.RRsets {
		if strings.EqualFold(rrset.Name, name) && strings.EqualFold(rrset.Type, rrtype) {
			return rrset, true
		}
	}
	return RRset{}, false
}

// zoneBody holds the two shapes a zone GET can take. Pointers distinguish
// an absent key from an empty list.
type zoneBody struct {
	RRsets  *[]RRset  `json:"rrsets"`
	Records *[]Record `json:"records"`
}

// ParseSnapshot decodes a zone GET body into a Snapshot.
//
// Schema 1+ servers answer with nested "rrsets"; schema 0 servers answer
// with a flat "records" list whose entries carry name, type and ttl. The
// key expected for version is tried first and the other one is tolerated.
// A body with neither key yields ErrSnapshotFormat.
func ParseSnapshot(version SchemaVersion, body []byte) (*Snapshot, error) {
	var zb zoneBody
	if err := json.Unmarshal(body, &zb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotFormat, err)
	}

	if version.Legacy() {
		if zb.Records != nil {
			return groupFlat(*zb.Records)
		}
		if zb.RRsets != nil {
			return nested(*zb.RRsets), nil
		}
	} else {
		if zb.RRsets != nil {
			return nested(*zb.RRsets), nil
		}
		if zb.Records != nil {
			return groupFlat(*zb.Records)
		}
	}

	return nil, fmt.Errorf("%w: zone body has neither rrsets nor records", ErrSnapshotFormat)
}

func nested(rrsets []RRset) *Snapshot {
	out := make([]RRset, len(rrsets))
	for i, rrset := range rrsets {
		rrset.Records = stripRecords(rrset.Records)
		out[i] = rrset
	}
	return &Snapshot{RRsets: out}
}

// groupFlat folds schema 0 records into RRsets keyed by (name, type),
// keeping the order in which each RRset was first seen.
func groupFlat(records []Record) (*Snapshot, error) {
	index := make(map[string]int)
	var rrsets []RRset

	for _, rec := range records {
		if rec.Name == "" || rec.Type == "" {
			return nil, fmt.Errorf("%w: flat record %q has no name or type", ErrSnapshotFormat, rec.Content)
		}
		key := RRset{Name: rec.Name, Type: rec.Type}.Key()
		i, ok := index[key]
		if !ok {
			i = len(rrsets)
			index[key] = i
			rrsets = append(rrsets, RRset{Name: rec.Name, Type: rec.Type, TTL: rec.TTL})
		}
		rrsets[i].Records = append(rrsets[i].Records, Record{
			Content:  rec.Content,
			Disabled: rec.Disabled,
			SetPTR:   rec.SetPTR,
		})
	}

	return &Snapshot{RRsets: rrsets}, nil
}

func stripRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = Record{Content: rec.Content, Disabled: rec.Disabled, SetPTR: rec.SetPTR}
	}
	return out
}

// With returns a copy of the snapshot in which r replaces the RRset with
// the same (name, type), or is appended when there is none. A DELETE or
// an RRset without records removes the entry.
func (s *Snapshot) With(r RRset) *Snapshot {
	out := &Snapshot{}
	replaced := false
	if s != nil {
		for _, existing := range s.RRsets {
			if existing.Key() != r.Key() {
				out.RRsets = append(out.RRsets, existing)
				continue
			}
			replaced = true
			if r.ChangeType != ChangeDelete && len(r.Records) > 0 {
				out.RRsets = append(out.RRsets, r)
			}
		}
	}
	if !replaced && r.ChangeType != ChangeDelete && len(r.Records) > 0 {
		out.RRsets = append(out.RRsets, r)
	}
	return out
}
