package domain

import "errors"

// ErrMissingTunnelRef is returned when a TUNNEL record has no tunnel reference.
var ErrMissingTunnelRef = errors.New("tunnel record missing tunnel reference")

// Keys expands the record into its desired identity keys within zone.
// Provider-managed types (NS, SOA) expand to nothing. MX expands to one key
// per (priority, value) pair; TUNNEL to a single key carrying the tunnel
// name; every other type to one key per literal value, with the set
// identifier preserved when present.
func (r RecordSpec) Keys(zone string) ([]RecordKey, error) {
	if !r.Type.Managed() {
		return nil, nil
	}
	fqdn, err := ResolveFQDN(r.Name, zone)
	if err != nil {
		return nil, err
	}
	switch r.Type {
	case TypeMX:
		keys := make([]RecordKey, 0, len(r.MXValues))
		for _, mx := range r.MXValues {
			keys = append(keys, KeyForMX(fqdn, mx.Priority, mx.Value))
		}
		return keys, nil
	case TypeTUNNEL:
		if r.Tunnel == nil {
			return nil, ErrMissingTunnelRef
		}
		return []RecordKey{KeyForTunnel(fqdn, r.Tunnel.Name)}, nil
	default:
		keys := make([]RecordKey, 0, len(r.Values))
		for _, v := range r.Values {
			keys = append(keys, KeyForValue(fqdn, r.Type, v, r.SetIdentifier))
		}
		return keys, nil
	}
}
