package domain

import "strings"

// RecordType is the textual DNS record type as it appears in zone files and
// provider APIs ("A", "CNAME", ...). TUNNEL is a synthetic type backed by a
// reverse-tunnel service rather than a literal value.
type RecordType string

const (
	TypeA      RecordType = "A"
	TypeAAAA   RecordType = "AAAA"
	TypeCNAME  RecordType = "CNAME"
	TypeTXT    RecordType = "TXT"
	TypeMX     RecordType = "MX"
	TypeNS     RecordType = "NS"
	TypeSOA    RecordType = "SOA"
	TypeSRV    RecordType = "SRV"
	TypeCAA    RecordType = "CAA"
	TypeTUNNEL RecordType = "TUNNEL"
)

// ParseRecordType normalizes a raw type string to its canonical upper-case form.
func ParseRecordType(s string) RecordType {
	return RecordType(strings.ToUpper(strings.TrimSpace(s)))
}

// Managed reports whether records of this type are managed declaratively.
// NS and SOA are provider-managed: they are never part of the desired set
// and never deletion candidates.
func (t RecordType) Managed() bool {
	return t != TypeNS && t != TypeSOA
}

// Proxiable reports whether Cloudflare accepts the proxied flag for this type.
func (t RecordType) Proxiable() bool {
	switch t {
	case TypeA, TypeAAAA, TypeCNAME:
		return true
	}
	return false
}
