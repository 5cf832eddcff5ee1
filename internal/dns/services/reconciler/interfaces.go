package reconciler

import (
	"context"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// ProviderState lists the live records of a zone. Implementations own all
// transport concerns (pagination, auth, retries) and must return the
// complete record set for the zone.
type ProviderState interface {
	ListRecords(ctx context.Context, zoneID string) ([]domain.LiveRecord, error)
}

// HistoryStore persists the last computed change set per zone so successive
// runs can report what moved.
type HistoryStore interface {
	Put(zone string, cs domain.ChangeSet) error
	Get(zone string) (domain.ChangeSet, bool, error)
}
