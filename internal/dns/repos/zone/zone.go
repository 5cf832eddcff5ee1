// Package zone loads declarative zone files and validates them into
// immutable ZoneDefinitions. Validation accumulates every applicable error
// and warning per file; a broken file never stops the batch.
package zone

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// rawDelim keys the koanf store. Dotted names (tunnel names, FQDN-style
// record names) are legal in zone documents, so the delimiter must be a
// byte that cannot appear in a YAML key or the flatten/unflatten round
// trip of Raw() would restructure them into nested maps.
const rawDelim = "\x00"

// LoadDirectory loads and validates every *.yml zone file in dir, merging
// globalTunnels into each zone's tunnel mapping (zone-local entries win).
// Results are returned in filename order. Only IO-level failures (unreadable
// directory) return an error; parse and validation failures are reported in
// the per-file results.
func LoadDirectory(dir string, globalTunnels map[string]domain.Tunnel) ([]domain.ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]domain.ValidationResult, 0, len(names))
	for _, name := range names {
		results = append(results, LoadFile(filepath.Join(dir, name), globalTunnels))
	}
	return results, nil
}

// LoadFile loads and validates a single zone file.
func LoadFile(path string, globalTunnels map[string]domain.Tunnel) domain.ValidationResult {
	base := filepath.Base(path)

	k := koanf.New(rawDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return domain.ValidationResult{
			File:      base,
			Malformed: &domain.MalformedInputError{File: base, Err: err},
		}
	}

	raw := k.Raw()
	if len(raw) == 0 {
		return domain.ValidationResult{
			File:      base,
			Malformed: &domain.MalformedInputError{File: base, Err: fmt.Errorf("document must be a non-empty mapping")},
		}
	}

	return Validate(raw, base, globalTunnels)
}
