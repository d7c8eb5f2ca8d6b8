package domain

import (
	"fmt"
	"strings"
)

// SchemaVersion is the PowerDNS API schema generation a client talks.
// Version 0 is the unversioned legacy API with flat record lists; 1 and
// above nest records inside RRsets under an /api/vN prefix.
type SchemaVersion int

// Legacy reports whether records must carry their RRset's name, type and TTL.
func (v SchemaVersion) Legacy() bool {
	return v <= 0
}

// ChangeType is the "changetype" of an RRset inside a PATCH changeset.
type ChangeType string

const (
	ChangeReplace ChangeType = "REPLACE"
	ChangeDelete  ChangeType = "DELETE"
)

// Common record types the library treats specially.
const (
	TypeSOA = "SOA"
	TypeNS  = "NS"
)

// Record is one resource record inside an RRset.
//
// Name, Type and TTL are only set for schema version 0, where every record
// repeats its RRset's identity.
type Record struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled"`
	SetPTR   bool   `json:"set-ptr"`

	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	TTL  int    `json:"ttl,omitempty"`
}

// Comment is a free-form note attached to an RRset.
type Comment struct {
	Content    string `json:"content"`
	Account    string `json:"account"`
	ModifiedAt int64  `json:"modified_at,omitempty"`
}

// RRset is the set of records sharing one owner name and type.
type RRset struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	TTL        int        `json:"ttl,omitempty"`
	ChangeType ChangeType `json:"changetype,omitempty"`
	Records    []Record   `json:"records"`
	Comments   []Comment  `json:"comments,omitempty"`
}

// Key identifies an RRset inside a zone. Owner names compare case-insensitively.
func (r RRset) Key() string {
	return strings.ToLower(r.Name) + "|" + strings.ToUpper(r.Type)
}

// Contents returns the record contents in order.
func (r RRset) Contents() []string {
	out := make([]string, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Content
	}
	return out
}

// Changeset is the body of a zone PATCH request.
type Changeset struct {
	RRsets []RRset `json:"rrsets"`
}

// Validate rejects changesets that name the same (name, type) twice.
func (c Changeset) Validate() error {
	seen := make(map[string]struct{}, len(c.RRsets))
	for _, rrset := range c.RRsets {
		if rrset.Name == "" || rrset.Type == "" {
			return fmt.Errorf("%w: rrset name and type are required", ErrValidation)
		}
		key := rrset.Key()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate rrset %s %s in changeset", ErrValidation, rrset.Name, rrset.Type)
		}
		seen[key] = struct{}{}
	}
	return nil
}
