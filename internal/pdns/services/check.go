package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// ZoneCheck is the outcome of checking one zone.
type ZoneCheck struct {
	Zone   string
	Serial uint32
	RRsets int
	Errors []string
}

// OK reports whether the server found no problem with the zone.
func (c ZoneCheck) OK() bool {
	return len(c.Errors) == 0
}

// CheckZones fetches and checks each zone concurrently. Results keep the
// order of names. The first failing request cancels the rest.
func (s *Service) CheckZones(ctx context.Context, names ...string) ([]ZoneCheck, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one zone is required", domain.ErrValidation)
	}

	results := make([]ZoneCheck, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, name := range names {
		zone, err := s.Zone(name)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			info, err := zone.Get(gctx)
			if err != nil {
				return err
			}
			report, err := zone.Check(gctx)
			if err != nil {
				return err
			}
			results[i] = ZoneCheck{
				Zone:   info.Name,
				Serial: info.Serial,
				RRsets: len(info.RRsets),
				Errors: reportErrors(report),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func reportErrors(report map[string]any) []string {
	raw, ok := report["errors"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		out = append(out, fmt.Sprint(e))
	}
	return out
}

// ValidateExport parses text as a BIND zone file rooted at zone and returns
// the number of resource records it holds.
func ValidateExport(zone, text string) (int, error) {
	origin := dns.Fqdn(strings.ToLower(strings.TrimSpace(zone)))
	zp := dns.NewZoneParser(strings.NewReader(text), origin, "")

	count := 0
	for _, ok := zp.Next(); ok; _, ok = zp.Next() {
		count++
	}
	if err := zp.Err(); err != nil {
		return count, fmt.Errorf("invalid export of zone %s: %w", origin, err)
	}
	return count, nil
}
