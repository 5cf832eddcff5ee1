// Package snapshot loads provider record exports from disk and presents them
// as live state. A snapshot directory holds one file per zone, named
// <zone>.cloudflare.json or <zone>.route53.json, in the shape the provider's
// own export tooling emits.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

const (
	errNoSnapshot   = "no snapshot found for zone %s in %s"
	errReadSnapshot = "read snapshot %s: %w"
	errParseFailed  = "parse snapshot %s: %w"
)

// Store reads provider exports from a directory, one file per zone.
type Store struct {
	dir string
}

// New creates a snapshot store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// ListRecords returns the records exported for the named zone. The provider is
// inferred from the snapshot filename; when both provider files exist the
// records are merged.
func (s *Store) ListRecords(_ context.Context, zone string) ([]domain.LiveRecord, error) {
	var (
		records []domain.LiveRecord
		found   bool
	)

	cfPath := filepath.Join(s.dir, zone+".cloudflare.json")
	if data, err := os.ReadFile(cfPath); err == nil {
		parsed, perr := parseCloudflare(data)
		if perr != nil {
			return nil, fmt.Errorf(errParseFailed, cfPath, perr)
		}
		records = append(records, parsed...)
		found = true
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf(errReadSnapshot, cfPath, err)
	}

	r53Path := filepath.Join(s.dir, zone+".route53.json")
	if data, err := os.ReadFile(r53Path); err == nil {
		parsed, perr := parseRoute53(data)
		if perr != nil {
			return nil, fmt.Errorf(errParseFailed, r53Path, perr)
		}
		records = append(records, parsed...)
		found = true
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf(errReadSnapshot, r53Path, err)
	}

	if !found {
		return nil, fmt.Errorf(errNoSnapshot, zone, s.dir)
	}
	return records, nil
}

// cloudflareRecord matches one element of a Cloudflare record list export.
type cloudflareRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Priority *int   `json:"priority,omitempty"`
}

func parseCloudflare(data []byte) ([]domain.LiveRecord, error) {
	var raw []cloudflareRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	records := make([]domain.LiveRecord, 0, len(raw))
	for _, r := range raw {
		rec := domain.LiveRecord{
			Name:       r.Name,
			Type:       domain.RecordType(strings.ToUpper(r.Type)),
			Content:    r.Content,
			ProviderID: r.ID,
		}
		if r.Priority != nil {
			rec.Priority = *r.Priority
		}
		records = append(records, rec)
	}
	return records, nil
}

// route53Export matches the output of `aws route53 list-resource-record-sets`.
type route53Export struct {
	ResourceRecordSets []route53RecordSet `json:"ResourceRecordSets"`
}

type route53RecordSet struct {
	Name            string           `json:"Name"`
	Type            string           `json:"Type"`
	SetIdentifier   string           `json:"SetIdentifier,omitempty"`
	ResourceRecords []route53Record  `json:"ResourceRecords,omitempty"`
	AliasTarget     *route53AliasTgt `json:"AliasTarget,omitempty"`
}

type route53Record struct {
	Value string `json:"Value"`
}

type route53AliasTgt struct {
	DNSName string `json:"DNSName"`
}

func parseRoute53(data []byte) ([]domain.LiveRecord, error) {
	var export route53Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}
	var records []domain.LiveRecord
	for _, set := range export.ResourceRecordSets {
		name := unescapeName(strings.TrimSuffix(set.Name, "."))
		rtype := domain.RecordType(strings.ToUpper(set.Type))
		if set.AliasTarget != nil {
			records = append(records, domain.LiveRecord{
				Name:    name,
				Type:    rtype,
				Content: strings.TrimSuffix(set.AliasTarget.DNSName, "."),
				SetID:   set.SetIdentifier,
			})
			continue
		}
		for _, rr := range set.ResourceRecords {
			rec := domain.LiveRecord{
				Name:  name,
				Type:  rtype,
				SetID: set.SetIdentifier,
			}
			if rtype == domain.TypeMX {
				priority, value := splitMX(rr.Value)
				rec.Priority = priority
				rec.Content = value
			} else {
				rec.Content = strings.TrimSuffix(rr.Value, ".")
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// unescapeName reverses the octal escaping Route53 applies to wildcard labels.
func unescapeName(name string) string {
	return strings.ReplaceAll(name, `\052`, "*")
}

// splitMX separates the "<priority> <exchange>" form Route53 stores MX values
// in. A value with no leading integer is kept whole at priority zero.
func splitMX(value string) (int, string) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) == 2 {
		if priority, err := strconv.Atoi(parts[0]); err == nil {
			return priority, strings.TrimSuffix(parts[1], ".")
		}
	}
	return 0, strings.TrimSuffix(value, ".")
}
