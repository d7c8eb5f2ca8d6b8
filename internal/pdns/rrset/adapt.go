package rrset

import "nathanbeddoewebdev/pdnsctl/internal/pdns/domain"

// Adapt shapes an RRset's records for the builder's schema version.
//
// Schema 0 repeats the RRset's name, type and ttl inside every record.
// Schema 1 and above keep only content, disabled and set-ptr. The input
// RRset is not modified.
func (b Builder) Adapt(r domain.RRset) domain.RRset {
	records := make([]domain.Record, len(r.Records))
	for i, rec := range r.Records {
		out := domain.Record{Content: rec.Content, Disabled: rec.Disabled, SetPTR: rec.SetPTR}
		if b.version.Legacy() {
			out.Name = r.Name
			out.Type = r.Type
			out.TTL = r.TTL
		}
		records[i] = out
	}
	r.Records = records
	return r
}
