package services

import (
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
)

// DefaultTTL is the TTL applied to new RRsets when none is specified.
const DefaultTTL = 3600

// powerDNSTypes are record types PowerDNS serves that miekg/dns does not know.
var powerDNSTypes = map[string]bool{
	"ALIAS": true,
	"LUA":   true,
}

// canonicalZone canonicalises a zone name for the server's schema: lower case,
// absolute for schema 1 and without the trailing dot for schema 0.
func canonicalZone(z string, legacy bool) (string, error) {
	z = strings.TrimSpace(z)
	if z == "" || z == "." {
		return "", fmt.Errorf("%w: zone name is required", domain.ErrValidation)
	}
	if _, ok := dns.IsDomainName(z); !ok {
		return "", fmt.Errorf("%w: invalid zone name %q", domain.ErrValidation, z)
	}
	return schemaName(dns.CanonicalName(z), legacy), nil
}

// recordName resolves name inside zone. "" and "@" mean the apex; names
// without a trailing dot are relative to the zone unless they already end
// with it. zone must already be canonical.
func recordName(name, zone string, legacy bool) (string, error) {
	name = strings.TrimSpace(name)
	origin := dns.Fqdn(zone)

	var fqdn string
	switch {
	case name == "" || name == "@":
		fqdn = origin
	case dns.IsFqdn(name):
		fqdn = dns.CanonicalName(name)
	default:
		lower := strings.ToLower(name)
		bare := strings.TrimSuffix(origin, ".")
		if lower == bare || strings.HasSuffix(lower, "."+bare) {
			fqdn = dns.Fqdn(lower)
		} else {
			fqdn = dns.Fqdn(lower + "." + bare)
		}
	}

	if _, ok := dns.IsDomainName(fqdn); !ok {
		return "", fmt.Errorf("%w: invalid record name %q", domain.ErrValidation, name)
	}
	if !dns.IsSubDomain(origin, fqdn) {
		return "", fmt.Errorf("%w: %s is not inside zone %s", domain.ErrValidation, fqdn, origin)
	}
	return schemaName(fqdn, legacy), nil
}

func schemaName(fqdn string, legacy bool) string {
	if legacy {
		return strings.TrimSuffix(fqdn, ".")
	}
	return fqdn
}

// recordType upper-cases t and checks that it names a known record type.
func recordType(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return "", fmt.Errorf("%w: record type is required", domain.ErrValidation)
	}
	if _, ok := dns.StringToType[t]; !ok && !powerDNSTypes[t] {
		return "", fmt.Errorf("%w: unsupported record type %q", domain.ErrValidation, t)
	}
	return t, nil
}

// recordContent checks content against the record type and returns it in
// the form PowerDNS expects: host targets are made absolute and TXT data
// is quoted.
func recordContent(t, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: record content cannot be empty", domain.ErrValidation)
	}

	switch t {
	case "A":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() == nil {
			return "", fmt.Errorf("%w: A record content must be a valid IPv4 address, got %q", domain.ErrValidation, content)
		}
	case "AAAA":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() != nil {
			return "", fmt.Errorf("%w: AAAA record content must be a valid IPv6 address, got %q", domain.ErrValidation, content)
		}
	case "CNAME", "NS", "PTR", "DNAME":
		return hostTarget(t, content)
	case "MX":
		prio, host, ok := strings.Cut(content, " ")
		if !ok {
			return "", fmt.Errorf("%w: MX record content must be \"<priority> <host>\", got %q", domain.ErrValidation, content)
		}
		host, err := hostTarget(t, strings.TrimSpace(host))
		if err != nil {
			return "", err
		}
		return prio + " " + host, nil
	case "TXT", "SPF":
		if !strings.HasPrefix(content, `"`) {
			return `"` + strings.ReplaceAll(content, `"`, `\"`) + `"`, nil
		}
	}
	return content, nil
}

func hostTarget(t, host string) (string, error) {
	if _, ok := dns.IsDomainName(host); !ok {
		return "", fmt.Errorf("%w: %s record target %q is not a domain name", domain.ErrValidation, t, host)
	}
	return dns.Fqdn(host), nil
}
