// Package scanner classifies the security posture of declared DNS records:
// dangling CNAME targets and subdomain-takeover exposure. It consumes lookup
// results through the Resolver port; actual network probing lives outside
// this package.
package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dnsops/zonectl/internal/dns/common/log"
	"github.com/dnsops/zonectl/internal/dns/domain"
)

// Sentinel lookup outcomes a Resolver reports.
var (
	ErrNXDomain = errors.New("target does not exist")
	ErrNoAnswer = errors.New("target has no address records")
	ErrTimeout  = errors.New("lookup timed out")
)

// Resolver answers whether a host resolves to at least one address record.
// Implementations return nil on success or one of the sentinel errors above;
// any other error is treated as an inconclusive lookup and skipped.
type Resolver interface {
	Resolve(ctx context.Context, host string) error
}

// Severity ranks a finding. Ordered from least to most severe.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// AtLeast reports whether s is at or above threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityRank[s] >= severityRank[threshold]
}

// ParseSeverity returns the Severity for a raw string.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	_, ok := severityRank[sev]
	return sev, ok
}

// Issue is one security finding against a declared record.
type Issue struct {
	Severity    Severity `json:"severity"`
	Zone        string   `json:"zone"`
	RecordName  string   `json:"record_name"`
	RecordType  string   `json:"record_type"`
	RecordValue string   `json:"record_value"`
	IssueType   string   `json:"issue_type"`
	Description string   `json:"description"`
	Remediation string   `json:"remediation"`
}

// Report is the JSON-exportable outcome of a scan.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	TotalIssues int       `json:"total_issues"`
	Issues      []Issue   `json:"issues"`
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FailsAt reports whether any issue is at or above the threshold severity.
func (r Report) FailsAt(threshold Severity) bool {
	for _, issue := range r.Issues {
		if issue.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

// skippedNamespaces are record names whose CNAME targets intentionally carry
// no address records (DKIM, DMARC, atproto handles).
var skippedNamespaces = []string{"_domainkey", "_dmarc", "_atproto"}

// Scanner walks zone definitions and classifies their CNAME targets.
type Scanner struct {
	resolver Resolver
	logger   log.Logger
}

// Options configures a Scanner.
type Options struct {
	Resolver Resolver
	Logger   log.Logger
}

// New builds a Scanner.
func New(opts Options) (*Scanner, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("scanner: resolver is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Scanner{resolver: opts.Resolver, logger: opts.Logger}, nil
}

// Scan checks every CNAME target of every zone and returns the report.
// Lookup failures that are neither NXDOMAIN, no-answer nor timeout are
// logged and skipped. Scan stops early only when ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, zones []*domain.ZoneDefinition) (Report, error) {
	report := Report{GeneratedAt: time.Now().UTC()}

	for _, zone := range zones {
		for _, rec := range zone.Records {
			if rec.Type != domain.TypeCNAME {
				continue
			}
			fqdn, err := domain.ResolveFQDN(rec.Name, zone.Name)
			if err != nil {
				continue
			}
			if skippedName(fqdn) {
				s.logger.Debug(map[string]any{"record": fqdn}, "skipping service record")
				continue
			}
			for _, target := range rec.Values {
				if err := ctx.Err(); err != nil {
					return report, err
				}
				if issue := s.checkTarget(ctx, zone.Name, fqdn, target); issue != nil {
					report.Issues = append(report.Issues, *issue)
				}
			}
		}
	}

	report.TotalIssues = len(report.Issues)
	return report, nil
}

// checkTarget classifies one CNAME target.
func (s *Scanner) checkTarget(ctx context.Context, zoneName, recordName, rawTarget string) *Issue {
	target := strings.TrimSuffix(rawTarget, ".")

	err := s.resolver.Resolve(ctx, target)
	issue := Issue{
		Zone:        zoneName,
		RecordName:  recordName,
		RecordType:  string(domain.TypeCNAME),
		RecordValue: target,
	}

	switch {
	case err == nil:
		return nil

	case errors.Is(err, ErrNXDomain):
		if fp := MatchFingerprint(target); fp != nil {
			if !fp.Detectable {
				issue.Severity = SeverityInfo
				issue.IssueType = "takeover_fingerprint_informational"
				issue.Description = fmt.Sprintf("CNAME target does not resolve and matches %s", fp.Description)
				issue.Remediation = fmt.Sprintf("Verify the configuration of %s; this service cannot be conclusively fingerprinted.", target)
				return &issue
			}
			issue.Severity = SeverityCritical
			issue.IssueType = "subdomain_takeover"
			issue.Description = fmt.Sprintf("CNAME points to non-existent domain that matches known vulnerable service: %s", fp.Description)
			issue.Remediation = fmt.Sprintf("Remove this DNS record immediately or claim the target service at %s. This subdomain can be taken over by an attacker.", target)
			return &issue
		}
		issue.Severity = SeverityHigh
		issue.IssueType = "broken_cname"
		issue.Description = "CNAME points to non-existent domain (NXDOMAIN)"
		issue.Remediation = "Remove this DNS record or update it to point to a valid domain."
		return &issue

	case errors.Is(err, ErrNoAnswer):
		issue.Severity = SeverityMedium
		issue.IssueType = "broken_cname"
		issue.Description = "CNAME target exists but has no A/AAAA records"
		issue.Remediation = fmt.Sprintf("Verify that %s is configured correctly or remove this DNS record.", target)
		return &issue

	case errors.Is(err, ErrTimeout):
		issue.Severity = SeverityLow
		issue.IssueType = "dns_timeout"
		issue.Description = "DNS query timeout when resolving CNAME target"
		issue.Remediation = fmt.Sprintf("Check if %s DNS is configured correctly. This may be a temporary issue.", target)
		return &issue
	}

	s.logger.Warn(map[string]any{"target": target, "error": err.Error()}, "inconclusive lookup")
	return nil
}

func skippedName(name string) bool {
	lower := strings.ToLower(name)
	for _, ns := range skippedNamespaces {
		if strings.Contains(lower, ns) {
			return true
		}
	}
	return false
}
