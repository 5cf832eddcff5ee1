package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnsops/zonectl/internal/dns/common/log"
	"github.com/dnsops/zonectl/internal/dns/gateways/probe"
	"github.com/dnsops/zonectl/internal/dns/infra/metrics"
	"github.com/dnsops/zonectl/internal/dns/repos/lookupcache"
	"github.com/dnsops/zonectl/internal/dns/services/scanner"
)

// newCmdScan returns the command that probes CNAME targets for takeover
// fingerprints and broken delegations.
func newCmdScan(a *app) *cobra.Command {
	var (
		output         string
		failOnSeverity string
		lookupTimeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan CNAME targets for takeover risk and broken records",
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, ok := scanner.ParseSeverity(failOnSeverity)
			if !ok {
				return fmt.Errorf("unknown severity %q", failOnSeverity)
			}

			results, err := a.loadZones()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if errs, _ := printResults(out, results); errs > 0 {
				return fmt.Errorf("refusing to scan: %d validation error(s)", errs)
			}

			resolver, err := lookupcache.New(probe.New(probe.Options{Timeout: lookupTimeout}), a.cfg.LookupCacheSize)
			if err != nil {
				return fmt.Errorf("build lookup cache: %w", err)
			}
			s, err := scanner.New(scanner.Options{Resolver: resolver, Logger: log.GetLogger()})
			if err != nil {
				return err
			}

			report, err := s.Scan(cmd.Context(), usableZones(results))
			if err != nil {
				return err
			}
			for _, issue := range report.Issues {
				metrics.ScanIssues.WithLabelValues(string(issue.Severity)).Inc()
				fmt.Fprintf(out, "[%s] %s %s: %s\n", issue.Severity, issue.Zone, issue.RecordName, issue.Description)
			}
			fmt.Fprintf(out, "%d issue(s) found\n", report.TotalIssues)

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				defer f.Close()
				if err := report.WriteJSON(f); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}

			if report.FailsAt(threshold) {
				return fmt.Errorf("issues at or above %s severity found", threshold)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the JSON report to this file")
	cmd.Flags().StringVar(&failOnSeverity, "fail-on-severity", "critical", "Exit non-zero when issues reach this severity")
	cmd.Flags().DurationVar(&lookupTimeout, "timeout", 5*time.Second, "Per-lookup timeout")
	return cmd
}
