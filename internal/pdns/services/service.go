// Package services provides the PowerDNS service layer.
//
// The Service type wraps a pdns.Client bound to one server and adds input
// normalisation, validation and default values before delegating to the
// client. CLI commands construct a Service and call its methods rather than
// building RRsets against the client directly.
package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// DefaultConcurrency bounds the number of zones fetched at once.
const DefaultConcurrency = 4

// Service is the business logic layer between CLI commands and the
// PowerDNS client.
type Service struct {
	client      *pdns.Client
	server      *pdns.Server
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets how many zones CheckZones fetches in parallel.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New returns a Service acting on serverID through client.
func New(client *pdns.Client, serverID string, opts ...Option) *Service {
	if serverID == "" {
		serverID = "localhost"
	}
	svc := &Service{
		client:      client,
		server:      client.Server(serverID),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) Client() *pdns.Client {
	return s.client
}

// Server returns the handle of the server the service acts on.
func (s *Service) Server() *pdns.Server {
	return s.server
}

func (s *Service) legacy() bool {
	return s.client.Version().Legacy()
}

// Zone normalises name and returns a handle on the zone.
func (s *Service) Zone(name string) (*pdns.Zone, error) {
	id, err := canonicalZone(name, s.legacy())
	if err != nil {
		return nil, err
	}
	return s.server.Zone(id), nil
}

// RecordOpts describes records of one RRset as typed on the command line.
// Name may be relative to Zone.
type RecordOpts struct {
	Zone     string
	Name     string
	Type     string
	TTL      int
	Contents []string
	Disabled bool
}

// ListZones returns the server's zones sorted by name.
func (s *Service) ListZones(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.server.Zones(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(zones, func(a, b domain.Zone) int {
		return strings.Compare(a.Name, b.Name)
	})
	return zones, nil
}

// GetZone returns a zone with its RRsets.
func (s *Service) GetZone(ctx context.Context, name string) (*domain.Zone, error) {
	zone, err := s.Zone(name)
	if err != nil {
		return nil, err
	}
	return zone.Get(ctx)
}

// CreateZoneOpts are the inputs of CreateZone.
type CreateZoneOpts struct {
	Name        string
	Kind        string
	Nameservers []string
	Masters     []string
}

// CreateZone validates opts and creates the zone. Kind defaults to Native.
func (s *Service) CreateZone(ctx context.Context, opts CreateZoneOpts) (*domain.Zone, error) {
	name, err := canonicalZone(opts.Name, s.legacy())
	if err != nil {
		return nil, err
	}

	kind, err := zoneKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindSlave && len(opts.Masters) == 0 {
		return nil, fmt.Errorf("%w: a Slave zone needs at least one master", domain.ErrValidation)
	}

	nameservers := make([]string, 0, len(opts.Nameservers))
	for _, ns := range opts.Nameservers {
		host, err := hostTarget("NS", strings.TrimSpace(ns))
		if err != nil {
			return nil, err
		}
		nameservers = append(nameservers, host)
	}

	return s.server.CreateZone(ctx, domain.Zone{
		Name:        name,
		Kind:        kind,
		Nameservers: nameservers,
		Masters:     opts.Masters,
	})
}

func zoneKind(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "native":
		return domain.KindNative, nil
	case "master":
		return domain.KindMaster, nil
	case "slave":
		return domain.KindSlave, nil
	default:
		return "", fmt.Errorf("%w: unknown zone kind %q (want Native, Master or Slave)", domain.ErrValidation, kind)
	}
}

// DeleteZone removes a zone and all its data.
func (s *Service) DeleteZone(ctx context.Context, name string) error {
	zone, err := s.Zone(name)
	if err != nil {
		return err
	}
	return zone.Delete(ctx)
}

// ListRRsets returns the zone's RRsets, optionally filtered by name and
// type, sorted by name then type.
func (s *Service) ListRRsets(ctx context.Context, zoneName, name, rrtype string) ([]domain.RRset, error) {
	zone, err := s.Zone(zoneName)
	if err != nil {
		return nil, err
	}
	snap, err := zone.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if name, err = recordName(name, zone.ID(), s.legacy()); err != nil {
			return nil, err
		}
	}
	if rrtype != "" {
		if rrtype, err = recordType(rrtype); err != nil {
			return nil, err
		}
	}

	var out []domain.RRset
	for _, r := range snap.RRsets {
		if name != "" && !strings.EqualFold(r.Name, name) {
			continue
		}
		if rrtype != "" && !strings.EqualFold(r.Type, rrtype) {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b domain.RRset) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Type, b.Type)
	})
	return out, nil
}

// AddRecords merges opts.Contents into the RRset. A new RRset gets
// DefaultTTL when opts.TTL is zero; an existing one keeps its TTL.
func (s *Service) AddRecords(ctx context.Context, opts RecordOpts) error {
	zone, edit, err := s.edit(opts, true)
	if err != nil {
		return err
	}
	snap, err := zone.Snapshot(ctx)
	if err != nil {
		return err
	}
	if _, ok := snap.Find(edit.Name, edit.Type); !ok && edit.TTL == 0 {
		edit.TTL = DefaultTTL
	}

	merged, err := s.client.Builder().Append(edit.Name, edit.Type, edit.TTL, edit.Records, snap)
	if err != nil {
		return err
	}
	return zone.Modify(ctx, merged)
}

// ReplaceRecords sets the RRset to exactly opts.Contents.
func (s *Service) ReplaceRecords(ctx context.Context, opts RecordOpts) error {
	zone, edit, err := s.edit(opts, true)
	if err != nil {
		return err
	}
	if edit.TTL == 0 {
		edit.TTL = DefaultTTL
	}
	return zone.Update(ctx, edit)
}

// RemoveRecords drops opts.Contents from the RRset and keeps the rest.
func (s *Service) RemoveRecords(ctx context.Context, opts RecordOpts) error {
	zone, edit, err := s.edit(opts, true)
	if err != nil {
		return err
	}
	return zone.RemoveRecords(ctx, edit)
}

// DeleteRRset removes a whole RRset.
func (s *Service) DeleteRRset(ctx context.Context, zoneName, name, rrtype string) error {
	zone, edit, err := s.edit(RecordOpts{Zone: zoneName, Name: name, Type: rrtype}, false)
	if err != nil {
		return err
	}
	return zone.Remove(ctx, pdns.RRsetID{Name: edit.Name, Type: edit.Type})
}

// UpdateRecord swaps oldContent for newContent inside one RRset. ttl <= 0
// keeps the RRset's TTL.
func (s *Service) UpdateRecord(ctx context.Context, zoneName, name, rrtype, oldContent, newContent string, ttl int) error {
	zone, old, err := s.edit(RecordOpts{Zone: zoneName, Name: name, Type: rrtype, Contents: []string{oldContent}}, true)
	if err != nil {
		return err
	}
	next := old
	if next.Records, err = records(old.Type, []string{newContent}, false); err != nil {
		return err
	}
	next.TTL = ttl
	return zone.UpdateRecord(ctx, old, next)
}

// PurgeZone deletes every RRset except the SOA and the NS RRsets served by
// one of keepNS. It returns the number of RRsets deleted.
func (s *Service) PurgeZone(ctx context.Context, zoneName string, keepNS []string) (int, error) {
	zone, err := s.Zone(zoneName)
	if err != nil {
		return 0, err
	}
	return zone.RemoveAll(ctx, keepNS...)
}

// ExportZone returns the zone in BIND format.
func (s *Service) ExportZone(ctx context.Context, zoneName string) (string, error) {
	zone, err := s.Zone(zoneName)
	if err != nil {
		return "", err
	}
	return zone.Export(ctx)
}

func (s *Service) edit(opts RecordOpts, needContents bool) (*pdns.Zone, pdns.Edit, error) {
	zone, err := s.Zone(opts.Zone)
	if err != nil {
		return nil, pdns.Edit{}, err
	}
	name, err := recordName(opts.Name, zone.ID(), s.legacy())
	if err != nil {
		return nil, pdns.Edit{}, err
	}
	rrtype, err := recordType(opts.Type)
	if err != nil {
		return nil, pdns.Edit{}, err
	}
	if opts.TTL < 0 {
		return nil, pdns.Edit{}, fmt.Errorf("%w: TTL must not be negative", domain.ErrValidation)
	}

	edit := pdns.Edit{Name: name, Type: rrtype, TTL: opts.TTL}
	if needContents {
		if len(opts.Contents) == 0 {
			return nil, pdns.Edit{}, fmt.Errorf("%w: at least one record content is required", domain.ErrValidation)
		}
		if edit.Records, err = records(rrtype, opts.Contents, opts.Disabled); err != nil {
			return nil, pdns.Edit{}, err
		}
	}
	return zone, edit, nil
}

func records(rrtype string, contents []string, disabled bool) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(contents))
	for _, c := range contents {
		content, err := recordContent(rrtype, c)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Record{Content: content, Disabled: disabled})
	}
	return out, nil
}
