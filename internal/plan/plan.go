// Package plan reads YAML files describing a batch of RRset edits that
// are applied to one zone in a single PATCH.
//
//	zone: example.com.
//	changes:
//	  - op: add
//	    name: www
//	    type: A
//	    ttl: 3600
//	    records: ["192.0.2.1", {content: "192.0.2.2", disabled: true}]
package plan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Op is the kind of edit a Change applies.
type Op string

const (
	// OpAdd merges records into an RRset, creating it when missing.
	OpAdd Op = "add"
	// OpReplace sets an RRset to exactly the listed records.
	OpReplace Op = "replace"
	// OpRemove drops the listed records and keeps the rest of the RRset.
	OpRemove Op = "remove"
	// OpDelete removes the whole RRset.
	OpDelete Op = "delete"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid plan")

// Plan is a batch of changes against one zone.
type Plan struct {
	Zone    string   `yaml:"zone"`
	Changes []Change `yaml:"changes"`
}

// Change is one entry of a plan.
type Change struct {
	Op      Op       `yaml:"op"`
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	TTL     int      `yaml:"ttl,omitempty"`
	Records []Record `yaml:"records,omitempty"`
}

// Record is a record entry. In YAML it is either a bare content string or
// a mapping with content and disabled keys.
type Record struct {
	Content  string `yaml:"content"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Content = node.Value
		r.Disabled = false
		return nil
	}

	type plain Record
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Record(p)
	return nil
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every change. Ops are matched case-insensitively and
// normalised to lower case.
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Zone) == "" {
		return fmt.Errorf("%w: zone is required", ErrInvalid)
	}
	if len(p.Changes) == 0 {
		return fmt.Errorf("%w: no changes", ErrInvalid)
	}

	seen := make(map[string]int, len(p.Changes))
	for i := range p.Changes {
		c := &p.Changes[i]
		c.Op = Op(strings.ToLower(strings.TrimSpace(string(c.Op))))

		switch c.Op {
		case OpAdd, OpReplace, OpRemove:
			if len(c.Records) == 0 {
				return fmt.Errorf("%w: change %d (%s): records are required", ErrInvalid, i+1, c.Op)
			}
		case OpDelete:
		case "":
			return fmt.Errorf("%w: change %d: op is required", ErrInvalid, i+1)
		default:
			return fmt.Errorf("%w: change %d: unknown op %q", ErrInvalid, i+1, c.Op)
		}

		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: change %d: name is required", ErrInvalid, i+1)
		}
		if strings.TrimSpace(c.Type) == "" {
			return fmt.Errorf("%w: change %d: type is required", ErrInvalid, i+1)
		}
		if c.TTL < 0 {
			return fmt.Errorf("%w: change %d: ttl must not be negative", ErrInvalid, i+1)
		}
		for j, r := range c.Records {
			if strings.TrimSpace(r.Content) == "" {
				return fmt.Errorf("%w: change %d: record %d has no content", ErrInvalid, i+1, j+1)
			}
		}

		key := strings.ToLower(c.Name) + "|" + strings.ToUpper(c.Type)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: changes %d and %d both edit %s %s", ErrInvalid, prev, i+1, c.Name, strings.ToUpper(c.Type))
		}
		seen[key] = i + 1
	}
	return nil
}

// Contents returns the record contents of c in order.
func (c Change) Contents() []string {
	out := make([]string, len(c.Records))
	for i, r := range c.Records {
		out[i] = r.Content
	}
	return out
}
