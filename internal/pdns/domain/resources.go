package domain

import (
	"encoding/json"
	"strings"
)

// APIVersion is one entry of the GET /api listing.
type APIVersion struct {
	URL     string `json:"url"`
	Version int    `json:"version"`
}

// Server is a PowerDNS daemon exposed by the API, usually "localhost".
type Server struct {
	Type       string `json:"type,omitempty"`
	ID         string `json:"id"`
	DaemonType string `json:"daemon_type,omitempty"`
	Version    string `json:"version,omitempty"`
	URL        string `json:"url,omitempty"`
	ConfigURL  string `json:"config_url,omitempty"`
	ZonesURL   string `json:"zones_url,omitempty"`
}

// Zone kinds accepted by PowerDNS.
const (
	KindNative = "Native"
	KindMaster = "Master"
	KindSlave  = "Slave"
)

// Zone describes a zone as returned by GET /servers/{id}/zones[/{zone}].
// RRsets is only filled in by the single-zone endpoint.
type Zone struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	URL            string   `json:"url,omitempty"`
	Kind           string   `json:"kind,omitempty"`
	Serial         uint32   `json:"serial,omitempty"`
	NotifiedSerial uint32   `json:"notified_serial,omitempty"`
	EditedSerial   uint32   `json:"edited_serial,omitempty"`
	Masters        []string `json:"masters,omitempty"`
	DNSSEC         bool     `json:"dnssec,omitempty"`
	NSEC3Param     string   `json:"nsec3param,omitempty"`
	NSEC3Narrow    bool     `json:"nsec3narrow,omitempty"`
	Presigned      bool     `json:"presigned,omitempty"`
	SOAEdit        string   `json:"soa_edit,omitempty"`
	SOAEditAPI     string   `json:"soa_edit_api,omitempty"`
	APIRectify     bool     `json:"api_rectify,omitempty"`
	Account        string   `json:"account,omitempty"`
	Nameservers    []string `json:"nameservers,omitempty"`
	RRsets         []RRset  `json:"rrsets,omitempty"`
}

// ConfigSetting is one server configuration value.
type ConfigSetting struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metadata is one per-zone metadata kind and its values.
type Metadata struct {
	Type     string   `json:"type"`
	Kind     string   `json:"kind"`
	Metadata []string `json:"metadata"`
}

// CryptoKey is a DNSSEC key of a zone. Private material is only returned
// when a single key is fetched.
type CryptoKey struct {
	Type       string   `json:"type,omitempty"`
	ID         int      `json:"id,omitempty"`
	KeyType    string   `json:"keytype,omitempty"`
	Active     bool     `json:"active"`
	Published  *bool    `json:"published,omitempty"`
	DNSKey     string   `json:"dnskey,omitempty"`
	DS         []string `json:"ds,omitempty"`
	PrivateKey string   `json:"privatekey,omitempty"`
	Algorithm  string   `json:"algorithm,omitempty"`
	Bits       int      `json:"bits,omitempty"`
}

// Override is a server-side answer override.
type Override struct {
	Type     string   `json:"type,omitempty"`
	ID       int      `json:"id,omitempty"`
	Override string   `json:"override"`
	Domain   string   `json:"domain"`
	RRType   string   `json:"rrtype,omitempty"`
	Values   []string `json:"values,omitempty"`
	Created  int64    `json:"created,omitempty"`
	Until    int64    `json:"until,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	User     string   `json:"user,omitempty"`
}

// StatisticItem is one entry of GET /servers/{id}/statistics. Value is a
// string for plain counters and a list for ring and map statistics.
type StatisticItem struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// ValueString renders Value for display.
func (s StatisticItem) ValueString() string {
	var str string
	if err := json.Unmarshal(s.Value, &str); err == nil {
		return str
	}
	return strings.TrimSpace(string(s.Value))
}

// SearchResult is one hit of GET /servers/{id}/search-data.
type SearchResult struct {
	Name       string `json:"name"`
	ObjectType string `json:"object_type"`
	Zone       string `json:"zone,omitempty"`
	ZoneID     string `json:"zone_id,omitempty"`
	Type       string `json:"type,omitempty"`
	Content    string `json:"content,omitempty"`
	TTL        int    `json:"ttl,omitempty"`
	Disabled   bool   `json:"disabled,omitempty"`
}
