// Package tunnels loads the optional process-wide tunnel document mapping
// tunnel names to their definitions. Zone files overlay these entries with
// their own.
package tunnels

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// Load reads the global tunnel document at path. An empty path means no
// global tunnels and yields an empty mapping. The document must map tunnel
// name to an object with a non-empty string tunnel_id.
func Load(path string) (map[string]domain.Tunnel, error) {
	if path == "" {
		return map[string]domain.Tunnel{}, nil
	}

	// NUL cannot appear in a YAML key, so dotted tunnel names survive the
	// flatten/unflatten round trip of Raw().
	k := koanf.New("\x00")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading tunnel file %s: %w", path, err)
	}

	out := make(map[string]domain.Tunnel)
	for name, raw := range k.Raw() {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tunnel %q: must be an object with a tunnel_id", name)
		}
		id, ok := entry["tunnel_id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("tunnel %q: tunnel_id must be a non-empty string", name)
		}
		out[name] = domain.Tunnel{ID: id}
	}
	return out, nil
}
