package pdnstest

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"

	"github.com/go-chi/chi/v5"
)

type zoneState struct {
	zone     domain.Zone
	rrsets   []domain.RRset
	metadata map[string][]string
	keys     []domain.CryptoKey
	nextKey  int

	notifies   int
	retrievals int
	rectified  int
}

// addZone stores zone under its id (or name). Callers hold no lock.
func (s *Server) addZone(zone domain.Zone) *zoneState {
	id := zone.ID
	if id == "" {
		id = zone.Name
	}
	zone.ID = id
	zone.Type = "Zone"
	zone.URL = s.prefix() + "/servers/" + ServerID + "/zones/" + id
	if zone.Kind == "" {
		zone.Kind = domain.KindNative
	}
	if zone.Serial == 0 {
		zone.Serial = 1
	}

	state := &zoneState{
		rrsets:   copyRRsets(zone.RRsets),
		metadata: map[string][]string{},
		nextKey:  1,
	}
	zone.RRsets = nil
	zone.Nameservers = nil
	state.zone = zone

	s.zones[id] = state
	s.zoneOrder = append(s.zoneOrder, id)
	return state
}

// Zone returns a copy of a stored zone including its RRsets.
func (s *Server) Zone(id string) (domain.Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[id]
	if !ok {
		return domain.Zone{}, false
	}
	out := z.zone
	out.RRsets = copyRRsets(z.rrsets)
	return out, true
}

// RRset returns one stored RRset.
func (s *Server) RRset(zoneID, name, rrtype string) (domain.RRset, bool) {
	z, ok := s.Zone(zoneID)
	if !ok {
		return domain.RRset{}, false
	}
	return (&domain.Snapshot{RRsets: z.RRsets}).Find(name, rrtype)
}

// Notifies returns how many NOTIFY requests a zone received.
func (s *Server) Notifies(zoneID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z, ok := s.zones[zoneID]; ok {
		return z.notifies
	}
	return 0
}

// Metadata returns the stored values of one metadata kind.
func (s *Server) Metadata(zoneID, kind string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z, ok := s.zones[zoneID]; ok {
		return append([]string(nil), z.metadata[kind]...)
	}
	return nil
}

func (s *Server) zoneRoutes(r chi.Router) {
	r.Use(s.requireZone)
	r.Get("/", s.getZone)
	r.Put("/", s.putZone)
	r.Delete("/", s.deleteZone)
	r.Patch("/", s.patchZone)

	r.Put("/notify", s.notifyZone)
	r.Put("/axfr-retrieve", s.axfrRetrieve)
	r.Put("/rectify", s.rectifyZone)
	r.Get("/export", s.exportZone)
	r.Get("/check", s.checkZone)

	r.Get("/metadata", s.listMetadata)
	r.Post("/metadata", s.createMetadata)
	r.Get("/metadata/{kind}", s.getMetadata)
	r.Put("/metadata/{kind}", s.putMetadata)
	r.Delete("/metadata/{kind}", s.deleteMetadata)

	r.Get("/cryptokeys", s.listCryptoKeys)
	r.Post("/cryptokeys", s.createCryptoKey)
	r.Get("/cryptokeys/{id}", s.getCryptoKey)
	r.Put("/cryptokeys/{id}", s.putCryptoKey)
	r.Delete("/cryptokeys/{id}", s.deleteCryptoKey)
}

func zoneID(r *http.Request) string {
	id := chi.URLParam(r, "zone")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func (s *Server) requireZone(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := zoneID(r)
		s.mu.Lock()
		_, ok := s.zones[id]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Could not find domain '%s'", id))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- zones ---

// legacyZone is the schema 0 zone body: zone fields plus a flat record list.
type legacyZone struct {
	domain.Zone
	Records []domain.Record `json:"records"`
}

func (s *Server) listZones(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Zone, 0, len(s.zoneOrder))
	for _, id := range s.zoneOrder {
		out = append(out, s.zones[id].zone)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createZone(w http.ResponseWriter, r *http.Request) {
	var body domain.Zone
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "Zone name is required")
		return
	}
	if s.version > 0 && !strings.HasSuffix(body.Name, ".") {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("DNS Name '%s' is not canonical", body.Name))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.zones[body.Name]; exists {
		writeError(w, http.StatusConflict, fmt.Sprintf("Domain '%s' already exists", body.Name))
		return
	}

	rrsets := copyRRsets(body.RRsets)
	snap := &domain.Snapshot{RRsets: rrsets}
	if _, ok := snap.Find(body.Name, domain.TypeSOA); !ok {
		soa := domain.RRset{Name: body.Name, Type: domain.TypeSOA, TTL: 3600, Records: []domain.Record{{
			Content: fmt.Sprintf("a.misconfigured.dns.server.invalid. hostmaster.%s 0 10800 3600 604800 3600", body.Name),
		}}}
		rrsets = append([]domain.RRset{soa}, rrsets...)
	}
	if len(body.Nameservers) > 0 {
		ns := domain.RRset{Name: body.Name, Type: domain.TypeNS, TTL: 3600}
		for _, host := range body.Nameservers {
			ns.Records = append(ns.Records, domain.Record{Content: host})
		}
		rrsets = append(rrsets, ns)
	}
	body.RRsets = rrsets
	body.ID = ""

	state := s.addZone(body)
	out := state.zone
	out.RRsets = copyRRsets(state.rrsets)
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getZone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	if s.version <= 0 {
		body := legacyZone{Zone: z.zone, Records: []domain.Record{}}
		for _, rrset := range z.rrsets {
			for _, rec := range rrset.Records {
				rec.Name, rec.Type, rec.TTL = rrset.Name, rrset.Type, rrset.TTL
				body.Records = append(body.Records, rec)
			}
		}
		writeJSON(w, http.StatusOK, body)
		return
	}

	out := z.zone
	out.RRsets = copyRRsets(z.rrsets)
	if out.RRsets == nil {
		out.RRsets = []domain.RRset{}
	}
	writeJSON(w, http.StatusOK, struct {
		domain.Zone
		RRsets []domain.RRset `json:"rrsets"`
	}{Zone: out, RRsets: out.RRsets})
}

func (s *Server) putZone(w http.ResponseWriter, r *http.Request) {
	var body domain.Zone
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if body.Kind != "" {
		z.zone.Kind = body.Kind
	}
	if body.Masters != nil {
		z.zone.Masters = body.Masters
	}
	if body.Account != "" {
		z.zone.Account = body.Account
	}
	if body.SOAEditAPI != "" {
		z.zone.SOAEditAPI = body.SOAEditAPI
	}
	z.zone.APIRectify = body.APIRectify
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteZone(w http.ResponseWriter, r *http.Request) {
	id := zoneID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.zones, id)
	for i, z := range s.zoneOrder {
		if z == id {
			s.zoneOrder = append(s.zoneOrder[:i], s.zoneOrder[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// patchZone applies a changeset atomically: every RRset is checked before
// any is applied.
func (s *Server) patchZone(w http.ResponseWriter, r *http.Request) {
	var body domain.Changeset
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	seen := map[string]bool{}
	for i, rrset := range body.RRsets {
		if msg := s.checkRRset(z, rrset); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		if seen[rrset.Key()] {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Duplicate RRset %s IN %s with changetype: %s", rrset.Name, rrset.Type, rrset.ChangeType))
			return
		}
		seen[rrset.Key()] = true

		if rrset.TTL == 0 && len(rrset.Records) > 0 {
			body.RRsets[i].TTL = rrset.Records[0].TTL
		}
	}

	for _, rrset := range body.RRsets {
		z.apply(rrset)
	}
	z.zone.Serial++
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkRRset(z *zoneState, rrset domain.RRset) string {
	if rrset.Name == "" || rrset.Type == "" {
		return "RRset name and type are required"
	}
	if !inZone(rrset.Name, z.zone.Name) {
		return fmt.Sprintf("RRset %s IN %s: Name is out of zone", rrset.Name, rrset.Type)
	}

	switch rrset.ChangeType {
	case domain.ChangeDelete:
		return ""
	case domain.ChangeReplace:
	default:
		return fmt.Sprintf("Changetype not understood: %q", rrset.ChangeType)
	}

	for _, rec := range rrset.Records {
		if s.version <= 0 {
			if !strings.EqualFold(rec.Name, rrset.Name) || !strings.EqualFold(rec.Type, rrset.Type) {
				return fmt.Sprintf("Record %q does not carry name and type of RRset %s IN %s", rec.Content, rrset.Name, rrset.Type)
			}
			continue
		}
		if rec.Name != "" || rec.Type != "" {
			return fmt.Sprintf("Record %q carries unexpected name or type", rec.Content)
		}
	}

	if len(rrset.Records) > 0 && rrset.TTL == 0 && rrset.Records[0].TTL == 0 {
		return fmt.Sprintf("RRset %s IN %s: TTL is required", rrset.Name, rrset.Type)
	}
	return ""
}

func (z *zoneState) apply(change domain.RRset) {
	kept := z.rrsets[:0]
	var replacedAt = -1
	for _, existing := range z.rrsets {
		if existing.Key() == change.Key() {
			replacedAt = len(kept)
			continue
		}
		kept = append(kept, existing)
	}
	z.rrsets = kept

	if change.ChangeType == domain.ChangeDelete || len(change.Records) == 0 {
		return
	}

	stored := domain.RRset{Name: change.Name, Type: change.Type, TTL: change.TTL, Comments: change.Comments}
	for _, rec := range change.Records {
		stored.Records = append(stored.Records, domain.Record{Content: rec.Content, Disabled: rec.Disabled})
	}

	if replacedAt < 0 || replacedAt >= len(z.rrsets) {
		z.rrsets = append(z.rrsets, stored)
		return
	}
	z.rrsets = append(z.rrsets[:replacedAt], append([]domain.RRset{stored}, z.rrsets[replacedAt:]...)...)
}

func (s *Server) notifyZone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if z.zone.Kind == domain.KindSlave {
		writeError(w, http.StatusUnprocessableEntity, "Domain is not a master or native zone")
		return
	}
	z.notifies++
	writeJSON(w, http.StatusOK, map[string]string{"result": "Notification queued"})
}

func (s *Server) axfrRetrieve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if z.zone.Kind != domain.KindSlave {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Domain '%s' is not a slave domain", z.zone.Name))
		return
	}
	z.retrievals++
	writeJSON(w, http.StatusOK, map[string]string{"result": "Added retrieval request for '" + z.zone.Name + "'"})
}

func (s *Server) rectifyZone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if z.zone.Presigned {
		writeError(w, http.StatusUnprocessableEntity, "Zone is pre-signed, not rectifying.")
		return
	}
	z.rectified++
	writeJSON(w, http.StatusOK, map[string]string{"result": "Rectified"})
}

func (s *Server) exportZone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	var b strings.Builder
	for _, rrset := range z.rrsets {
		for _, rec := range rrset.Records {
			if rec.Disabled {
				continue
			}
			fmt.Fprintf(&b, "%s\t%d\tIN\t%s\t%s\n", rrset.Name, rrset.TTL, rrset.Type, rec.Content)
		}
	}

	if s.version <= 0 {
		writeJSON(w, http.StatusOK, map[string]string{"zone": b.String()})
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) checkZone(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	errs := []string{}
	if _, ok := (&domain.Snapshot{RRsets: z.rrsets}).Find(z.zone.Name, domain.TypeSOA); !ok {
		errs = append(errs, "zone has no SOA record")
	}
	writeJSON(w, http.StatusOK, map[string]any{"zone": z.zone.Name, "errors": errs})
}

// --- metadata ---

func (s *Server) listMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	kinds := make([]string, 0, len(z.metadata))
	for kind := range z.metadata {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	out := make([]domain.Metadata, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, domain.Metadata{Type: "Metadata", Kind: kind, Metadata: z.metadata[kind]})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMetadata(w http.ResponseWriter, r *http.Request) {
	var body domain.Metadata
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Kind == "" {
		writeError(w, http.StatusUnprocessableEntity, "Metadata kind is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	values := z.metadata[body.Kind]
	for _, v := range body.Metadata {
		if !contains(values, v) {
			values = append(values, v)
		}
	}
	z.metadata[body.Kind] = values
	writeJSON(w, http.StatusCreated, domain.Metadata{Type: "Metadata", Kind: body.Kind, Metadata: values})
}

func (s *Server) getMetadata(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.zones[zoneID(r)].metadata[kind]
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, domain.Metadata{Type: "Metadata", Kind: kind, Metadata: values})
}

func (s *Server) putMetadata(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var body domain.Metadata
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[zoneID(r)].metadata[kind] = append([]string{}, body.Metadata...)
	writeJSON(w, http.StatusOK, domain.Metadata{Type: "Metadata", Kind: kind, Metadata: body.Metadata})
}

func (s *Server) deleteMetadata(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.zones[zoneID(r)].metadata, kind)
	w.WriteHeader(http.StatusNoContent)
}

// --- cryptokeys ---

func (s *Server) listCryptoKeys(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	out := make([]domain.CryptoKey, 0, len(z.keys))
	for _, k := range z.keys {
		k.PrivateKey = ""
		out = append(out, k)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCryptoKey(w http.ResponseWriter, r *http.Request) {
	var body domain.CryptoKey
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch body.KeyType {
	case "":
		body.KeyType = "csk"
	case "ksk", "zsk", "csk":
	default:
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid keytype '%s'", body.KeyType))
		return
	}
	if body.Algorithm == "" {
		body.Algorithm = "ECDSAP256SHA256"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]

	body.Type = "Cryptokey"
	body.ID = z.nextKey
	z.nextKey++
	body.DNSKey = "257 3 13 dGVzdC1rZXktbWF0ZXJpYWw="
	body.DS = []string{fmt.Sprintf("%d 13 2 0000", 10000+body.ID)}
	if body.PrivateKey == "" {
		body.PrivateKey = "Private-key-format: v1.2\nAlgorithm: 13 (ECDSAP256SHA256)\nPrivateKey: dGVzdA==\n"
	}
	z.keys = append(z.keys, body)
	z.zone.DNSSEC = true
	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) cryptoKeyIndex(w http.ResponseWriter, r *http.Request, z *zoneState) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		for i, k := range z.keys {
			if k.ID == id {
				return i, true
			}
		}
	}
	writeError(w, http.StatusNotFound, "Could not find cryptokey")
	return 0, false
}

func (s *Server) getCryptoKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if i, ok := s.cryptoKeyIndex(w, r, z); ok {
		writeJSON(w, http.StatusOK, z.keys[i])
	}
}

func (s *Server) putCryptoKey(w http.ResponseWriter, r *http.Request) {
	var body domain.CryptoKey
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if i, ok := s.cryptoKeyIndex(w, r, z); ok {
		z.keys[i].Active = body.Active
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) deleteCryptoKey(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z := s.zones[zoneID(r)]
	if i, ok := s.cryptoKeyIndex(w, r, z); ok {
		z.keys = append(z.keys[:i], z.keys[i+1:]...)
		z.zone.DNSSEC = len(z.keys) > 0
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- helpers ---

func inZone(name, zone string) bool {
	n := strings.ToLower(strings.TrimSuffix(name, "."))
	z := strings.ToLower(strings.TrimSuffix(zone, "."))
	return n == z || strings.HasSuffix(n, "."+z)
}

func copyRRsets(in []domain.RRset) []domain.RRset {
	if in == nil {
		return nil
	}
	out := make([]domain.RRset, len(in))
	for i, r := range in {
		r.ChangeType = ""
		records := make([]domain.Record, len(r.Records))
		for j, rec := range r.Records {
			records[j] = domain.Record{Content: rec.Content, Disabled: rec.Disabled, SetPTR: rec.SetPTR}
		}
		r.Records = records
		out[i] = r
	}
	return out
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
