package pdnstest

import "nathanbeddoewebdev/pdnsctl/internal/pdns/domain"

// ExampleZone returns a small Native zone: SOA, two NS records, an A record
// for www and an MX record for mail.
func ExampleZone(name string) domain.Zone {
	record := func(contents ...string) []domain.Record {
		out := make([]domain.Record, len(contents))
		for i, c := range contents {
			out[i] = domain.Record{Content: c}
		}
		return out
	}
	return domain.Zone{
		Name: name,
		Kind: domain.KindNative,
		RRsets: []domain.RRset{
			{Name: name, Type: "SOA", TTL: 3600, Records: record("ns1.example.net. hostmaster." + name + " 1 10800 3600 604800 3600")},
			{Name: name, Type: "NS", TTL: 86400, Records: record("ns1.example.net.", "ns2.example.net.")},
			{Name: "www." + name, Type: "A", TTL: 300, Records: record("127.0.0.1")},
			{Name: "mail." + name, Type: "MX", TTL: 300, Records: record("10 mx1." + name)},
		},
	}
}
