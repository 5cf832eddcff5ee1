package main

import (
	"fmt"
	"io"

	"github.com/dnsops/zonectl/internal/dns/domain"
	"github.com/dnsops/zonectl/internal/dns/infra/metrics"
	"github.com/dnsops/zonectl/internal/dns/repos/tunnels"
	"github.com/dnsops/zonectl/internal/dns/repos/zone"
)

// loadZones reads the global tunnel document and validates every zone file in
// the configured directory.
func (a *app) loadZones() ([]domain.ValidationResult, error) {
	globals, err := tunnels.Load(a.cfg.TunnelFile)
	if err != nil {
		return nil, fmt.Errorf("load tunnel file: %w", err)
	}
	results, err := zone.LoadDirectory(a.cfg.ZoneDir, globals)
	if err != nil {
		return nil, fmt.Errorf("load zone directory: %w", err)
	}
	return results, nil
}

// printResults writes every issue to w and returns the error and warning
// totals across all files.
func printResults(w io.Writer, results []domain.ValidationResult) (errs, warns int) {
	for _, result := range results {
		outcome := "ok"
		switch {
		case result.Malformed != nil:
			fmt.Fprintf(w, "%s: ERROR %v\n", result.File, result.Malformed.Err)
			errs++
			outcome = "malformed"
		case len(result.Errors) > 0:
			outcome = "invalid"
		}
		for _, e := range result.Errors {
			fmt.Fprintf(w, "%s: ERROR %s\n", result.File, e.Error())
			errs++
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "%s: WARN %s\n", result.File, warning.String())
			warns++
		}
		metrics.ZonesValidated.WithLabelValues(outcome).Inc()
	}
	metrics.ValidationIssues.WithLabelValues("error").Add(float64(errs))
	metrics.ValidationIssues.WithLabelValues("warning").Add(float64(warns))
	return errs, warns
}

// usableZones extracts the parsed definitions from files that validated clean.
func usableZones(results []domain.ValidationResult) []*domain.ZoneDefinition {
	var zones []*domain.ZoneDefinition
	for _, result := range results {
		if result.OK() && result.Zone != nil {
			zones = append(zones, result.Zone)
		}
	}
	return zones
}
