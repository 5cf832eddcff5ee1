package reconciler

import (
	"sort"
	"strings"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// DefaultMarkerPrefix is the TXT ownership-marker prefix reserved by the
// external DNS automation process.
const DefaultMarkerPrefix = "_external-dns."

// protectedSubstrings name infrastructure namespaces that are never deletion
// candidates, whoever created them: ACME challenges, DMARC policy and DKIM
// selectors.
var protectedSubstrings = []string{"_acme-challenge", "_dmarc", "_domainkey"}

// OwnershipMarkers derives the set of names an external automation process
// asserts ownership of: every TXT record named <prefix><name> contributes
// <name>.
func OwnershipMarkers(live []domain.LiveRecord, prefix string) map[string]struct{} {
	markers := make(map[string]struct{})
	for _, r := range live {
		if r.Type == domain.TypeTXT && strings.HasPrefix(r.Name, prefix) {
			markers[strings.TrimPrefix(r.Name, prefix)] = struct{}{}
		}
	}
	return markers
}

// Reconcile compares the desired key set against a complete live snapshot
// and classifies every manageable live record as satisfied, protected or a
// deletion candidate. Desired records absent from live state are reported as
// Missing; acting on them belongs to the IaC pipeline, not to this engine.
// Reconcile is a pure function over its two snapshots: it performs no IO and
// repeated calls on unchanged input yield identical change sets.
func Reconcile(desired map[domain.RecordKey]struct{}, live []domain.LiveRecord, zoneName string, markers map[string]struct{}, markerPrefix string) domain.ChangeSet {
	cs := domain.ChangeSet{Zone: zoneName}

	liveKeys := make(map[domain.RecordKey]struct{}, len(live))
	for _, r := range live {
		if !r.Type.Managed() {
			continue
		}
		key := r.Key()
		liveKeys[key] = struct{}{}

		if _, ok := desired[key]; ok {
			continue
		}
		if reason, protected := protect(r, zoneName, markers, markerPrefix); protected {
			cs.Protected = append(cs.Protected, domain.ProtectedRecord{Record: r, Reason: reason})
			continue
		}
		cs.ToDelete = append(cs.ToDelete, r)
	}

	for key := range desired {
		if _, ok := liveKeys[key]; ok {
			cs.Satisfied = append(cs.Satisfied, key)
		} else {
			cs.Missing = append(cs.Missing, key)
		}
	}
	sortKeys(cs.Satisfied)
	sortKeys(cs.Missing)

	return cs
}

// protect decides whether a live record that is not desired is exempt from
// deletion, and why.
func protect(r domain.LiveRecord, zoneName string, markers map[string]struct{}, markerPrefix string) (domain.ProtectReason, bool) {
	if r.Name == zoneName {
		return domain.ProtectApex, true
	}
	if r.Type == domain.TypeTXT && strings.HasPrefix(r.Name, markerPrefix) {
		return domain.ProtectOwnershipMarker, true
	}
	if _, ok := markers[r.Name]; ok {
		return domain.ProtectExternalOwner, true
	}
	for _, sub := range protectedSubstrings {
		if strings.Contains(r.Name, sub) {
			return domain.ProtectInfrastructure, true
		}
	}
	return "", false
}

// sortKeys orders keys deterministically so change sets are stable across
// runs regardless of map iteration order.
func sortKeys(keys []domain.RecordKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Content != b.Content {
			return a.Content < b.Content
		}
		return a.SetID < b.SetID
	})
}
