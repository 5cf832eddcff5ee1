package domain

// Tunnel describes one reverse-tunnel endpoint a TUNNEL record may reference.
type Tunnel struct {
	ID string `json:"tunnel_id"`
}

// TunnelRef is the reference a TUNNEL record carries: the tunnel name, which
// must resolve in the zone's merged tunnel mapping, and the origin service
// the tunnel fronts.
type TunnelRef struct {
	Name    string `json:"name"`
	Service string `json:"service"`
}

// TunnelServiceSchemes lists the origin service scheme prefixes a TUNNEL
// record may use.
var TunnelServiceSchemes = []string{
	"http://", "https://", "tcp://", "udp://", "ssh://", "rdp://", "unix://", "unix+tls://",
}

// MXValue is one (priority, value) pair of an MX record. Each pair is an
// independent desired record, not an alternative value.
type MXValue struct {
	Priority int    `json:"priority"`
	Value    string `json:"value"`
}

// RecordSpec is the canonical, provider-neutral intent for one DNS record
// as declared in a zone file.
type RecordSpec struct {
	Type RecordType `json:"type"`

	// Name is the record name relative to the zone, or an absolute name
	// within it. "@" and the zone name itself denote the apex, "*" the
	// wildcard apex.
	Name string `json:"name"`

	// Values holds the literal content strings for every type except MX
	// and TUNNEL.
	Values []string `json:"values,omitempty"`

	// MXValues holds the (priority, value) pairs of an MX record.
	MXValues []MXValue `json:"mx_records,omitempty"`

	// SetIdentifier distinguishes weighted/failover records that share
	// name and type. It participates in record identity when present.
	SetIdentifier string `json:"set_identifier,omitempty"`

	// Proxied is the Cloudflare proxy flag. Nil when not declared.
	Proxied *bool `json:"proxied,omitempty"`

	// Tunnel is required when Type is TUNNEL and must be nil otherwise.
	Tunnel *TunnelRef `json:"tunnel,omitempty"`
}

// ZoneDefinition is the validated, immutable model of one zone file.
// It is produced once by the zone loader and never mutated afterwards.
type ZoneDefinition struct {
	// Name is the fully qualified zone name, equal to the defining
	// file's stem.
	Name string `json:"zone_name"`

	Providers   []Provider   `json:"providers"`
	Nameservers []string     `json:"nameservers,omitempty"`

	// Tunnels is the merged tunnel mapping: global entries overlaid with
	// zone-local ones, zone-local winning on name collisions.
	Tunnels map[string]Tunnel `json:"tunnels,omitempty"`

	Records []RecordSpec `json:"records"`
}

// HasProvider reports whether the zone is hosted on the given provider.
func (z *ZoneDefinition) HasProvider(p Provider) bool {
	for _, have := range z.Providers {
		if have == p {
			return true
		}
	}
	return false
}
