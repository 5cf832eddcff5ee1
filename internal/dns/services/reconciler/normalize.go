package reconciler

import (
	"fmt"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// DesiredKeys expands a zone definition into its desired identity-key set.
// NS and SOA records expand to nothing, MX records to one key per
// (priority, value) pair, TUNNEL records to a key carrying the tunnel name,
// and everything else to one key per literal value. The result is a pure
// function of the definition: identical input yields an identical set.
func DesiredKeys(z domain.ZoneDefinition) (map[domain.RecordKey]struct{}, error) {
	keys := make(map[domain.RecordKey]struct{})
	for _, r := range z.Records {
		expanded, err := r.Keys(z.Name)
		if err != nil {
			return nil, fmt.Errorf("record %s %q: %w", r.Type, r.Name, err)
		}
		for _, k := range expanded {
			keys[k] = struct{}{}
		}
	}
	return keys, nil
}
