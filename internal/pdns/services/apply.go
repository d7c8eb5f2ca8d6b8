package services

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/plan"
)

// ApplyPlan builds every change of p against one snapshot of the zone and
// submits them in a single PATCH. It returns the RRsets sent.
func (s *Service) ApplyPlan(ctx context.Context, p *plan.Plan) ([]domain.RRset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	zone, err := s.Zone(p.Zone)
	if err != nil {
		return nil, err
	}
	snap, err := zone.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	builder := s.client.Builder()
	rrsets := make([]domain.RRset, 0, len(p.Changes))
	for i, c := range p.Changes {
		name, err := recordName(c.Name, zone.ID(), s.legacy())
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i+1, err)
		}
		rrtype, err := recordType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i+1, err)
		}

		recs := make([]domain.Record, 0, len(c.Records))
		for _, r := range c.Records {
			content, err := recordContent(rrtype, r.Content)
			if err != nil {
				return nil, fmt.Errorf("change %d: %w", i+1, err)
			}
			recs = append(recs, domain.Record{Content: content, Disabled: r.Disabled})
		}

		var built domain.RRset
		switch c.Op {
		case plan.OpAdd:
			ttl := c.TTL
			if _, ok := snap.Find(name, rrtype); !ok && ttl == 0 {
				ttl = DefaultTTL
			}
			built, err = builder.Append(name, rrtype, ttl, recs, snap)
		case plan.OpReplace:
			ttl := c.TTL
			if ttl == 0 {
				ttl = DefaultTTL
				if existing, ok := snap.Find(name, rrtype); ok && existing.TTL > 0 {
					ttl = existing.TTL
				}
			}
			built, err = builder.Replace(name, rrtype, ttl, recs)
		case plan.OpRemove:
			built, err = builder.RemoveRecords(name, rrtype, recs, snap)
		case plan.OpDelete:
			built, err = builder.Delete(name, rrtype)
		}
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i+1, err)
		}
		rrsets = append(rrsets, built)
	}

	if err := zone.Modify(ctx, rrsets...); err != nil {
		return nil, err
	}
	return rrsets, nil
}
