package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ZonesValidated counts zone files processed by validation, by outcome
	ZonesValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonectl_zones_validated_total",
		Help: "Total number of zone files validated",
	}, []string{"outcome"})

	// ValidationIssues counts validation errors and warnings emitted
	ValidationIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonectl_validation_issues_total",
		Help: "Total number of validation issues emitted",
	}, []string{"severity"})

	// PlanRecords tracks the size of the last computed plan per zone and bucket
	PlanRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zonectl_plan_records",
		Help: "Number of records in the last reconciliation plan",
	}, []string{"zone", "bucket"})

	// ScanIssues counts hygiene scan findings by severity
	ScanIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonectl_scan_issues_total",
		Help: "Total number of hygiene scan issues found",
	}, []string{"severity"})

	// LookupDuration tracks resolver lookup latency during scans
	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zonectl_lookup_duration_seconds",
		Help:    "Histogram of resolver lookup duration",
		Buckets: prometheus.DefBuckets,
	})
)

// ObservePlan records the bucket sizes of a computed plan.
func ObservePlan(zone string, toDelete, satisfied, protected, missing int) {
	PlanRecords.WithLabelValues(zone, "to_delete").Set(float64(toDelete))
	PlanRecords.WithLabelValues(zone, "satisfied").Set(float64(satisfied))
	PlanRecords.WithLabelValues(zone, "protected").Set(float64(protected))
	PlanRecords.WithLabelValues(zone, "missing").Set(float64(missing))
}

// Serve exposes the Prometheus registry at /metrics on addr. It blocks, so
// callers run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
