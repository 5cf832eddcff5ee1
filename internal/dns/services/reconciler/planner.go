// Package reconciler computes safe, provider-agnostic change sets from
// declarative zone definitions and live provider snapshots. It decides what
// must change; it never mutates anything itself.
package reconciler

import (
	"context"
	"fmt"

	"github.com/dnsops/zonectl/internal/dns/common/log"
	"github.com/dnsops/zonectl/internal/dns/domain"
)

// PlannerOptions configures a Planner.
type PlannerOptions struct {
	// State lists live records per zone. Required.
	State ProviderState

	// History, when set, records each computed change set so the next run
	// can report movement.
	History HistoryStore

	// MarkerPrefix overrides DefaultMarkerPrefix.
	MarkerPrefix string

	Logger log.Logger
}

// Planner runs the full desired-vs-live pipeline for one zone at a time.
// Zones share no mutable state, so callers may plan zones concurrently with
// one Planner.
type Planner struct {
	state        ProviderState
	history      HistoryStore
	markerPrefix string
	logger       log.Logger
}

// NewPlanner builds a Planner from options, applying defaults.
func NewPlanner(opts PlannerOptions) (*Planner, error) {
	if opts.State == nil {
		return nil, fmt.Errorf("reconciler: provider state is required")
	}
	if opts.MarkerPrefix == "" {
		opts.MarkerPrefix = DefaultMarkerPrefix
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Planner{
		state:        opts.State,
		history:      opts.History,
		markerPrefix: opts.MarkerPrefix,
		logger:       opts.Logger,
	}, nil
}

// PlanZone fetches the zone's live snapshot, reconciles it against the
// definition's desired keys, and returns the resulting change set. The
// returned value is a decision only; nothing is applied.
func (p *Planner) PlanZone(ctx context.Context, zone *domain.ZoneDefinition) (domain.ChangeSet, error) {
	desired, err := DesiredKeys(*zone)
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("normalizing zone %s: %w", zone.Name, err)
	}

	live, err := p.state.ListRecords(ctx, zone.Name)
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("listing live records for %s: %w", zone.Name, err)
	}

	markers := OwnershipMarkers(live, p.markerPrefix)
	cs := Reconcile(desired, live, zone.Name, markers, p.markerPrefix)

	p.logger.Info(map[string]any{
		"zone":      zone.Name,
		"desired":   len(desired),
		"live":      len(live),
		"to_delete": len(cs.ToDelete),
		"satisfied": len(cs.Satisfied),
		"protected": len(cs.Protected),
		"missing":   len(cs.Missing),
	}, "zone reconciled")

	if p.history != nil {
		prev, ok, err := p.history.Get(zone.Name)
		if err != nil {
			p.logger.Warn(map[string]any{"zone": zone.Name, "error": err.Error()}, "could not read plan history")
		} else if ok && !sameDeletions(prev.ToDelete, cs.ToDelete) {
			p.logger.Info(map[string]any{
				"zone":     zone.Name,
				"previous": len(prev.ToDelete),
				"current":  len(cs.ToDelete),
			}, "deletion candidates changed since last run")
		}
		if err := p.history.Put(zone.Name, cs); err != nil {
			p.logger.Warn(map[string]any{"zone": zone.Name, "error": err.Error()}, "could not persist plan history")
		}
	}

	return cs, nil
}

// sameDeletions reports whether two deletion-candidate lists name the same
// record keys, so a swap at equal count still counts as a change.
func sameDeletions(a, b []domain.LiveRecord) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make(map[domain.RecordKey]int, len(a))
	for _, r := range a {
		keys[r.Key()]++
	}
	for _, r := range b {
		k := r.Key()
		keys[k]--
		if keys[k] < 0 {
			return false
		}
	}
	return true
}
