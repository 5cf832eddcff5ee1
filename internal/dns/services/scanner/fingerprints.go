package scanner

import "strings"

// Fingerprint describes one known subdomain-takeover pattern: a substring of
// a CNAME target identifying a claimable hosted service.
type Fingerprint struct {
	// Pattern is matched as a case-insensitive substring of the target.
	Pattern string

	// Description names the service and the takeover condition.
	Description string

	// Detectable is true when an unclaimed instance surfaces as NXDOMAIN.
	// Patterns without it (shared AWS endpoints) are policy-classified as
	// informational only, never critical.
	Detectable bool
}

// fingerprints is the takeover policy table. The severity boundary
// (which services are critical, which informational) is operational policy
// carried over as-is, not derived.
var fingerprints = []Fingerprint{
	{Pattern: "github.io", Description: "GitHub Pages - unclaimed repository", Detectable: true},
	{Pattern: "herokuapp.com", Description: "Heroku - unclaimed app", Detectable: true},
	{Pattern: "azurewebsites.net", Description: "Azure Web Apps - unclaimed site", Detectable: true},
	{Pattern: "cloudapp.net", Description: "Azure Cloud Services - unclaimed service", Detectable: true},
	{Pattern: "cloudapp.azure.com", Description: "Azure Cloud Apps - unclaimed app", Detectable: true},
	{Pattern: "azurefd.net", Description: "Azure Front Door - unclaimed endpoint", Detectable: true},
	{Pattern: "s3.amazonaws.com", Description: "AWS S3 - unclaimed bucket", Detectable: true},
	{Pattern: "s3-website", Description: "AWS S3 Website - unclaimed bucket", Detectable: true},
	{Pattern: "amazonaws.com", Description: "AWS Service - potential misconfiguration", Detectable: false},
	{Pattern: "cloudfront.net", Description: "AWS CloudFront - misconfigured distribution", Detectable: false},
	{Pattern: "elasticbeanstalk.com", Description: "AWS Elastic Beanstalk - unclaimed environment", Detectable: true},
	{Pattern: "netlify.app", Description: "Netlify - unclaimed site", Detectable: true},
	{Pattern: "netlify.com", Description: "Netlify - unclaimed site", Detectable: true},
	{Pattern: "vercel.app", Description: "Vercel - unclaimed deployment", Detectable: true},
	{Pattern: "wordpress.com", Description: "WordPress.com - unclaimed site", Detectable: true},
	{Pattern: "pantheonsite.io", Description: "Pantheon - unclaimed site", Detectable: true},
	{Pattern: "zendesk.com", Description: "Zendesk - unclaimed instance", Detectable: true},
	{Pattern: "fastly.net", Description: "Fastly - unclaimed service", Detectable: true},
	{Pattern: "helpjuice.com", Description: "HelpJuice - unclaimed account", Detectable: true},
	{Pattern: "helpscoutdocs.com", Description: "Help Scout - unclaimed docs", Detectable: true},
	{Pattern: "ghost.io", Description: "Ghost - unclaimed blog", Detectable: true},
	{Pattern: "surge.sh", Description: "Surge.sh - unclaimed deployment", Detectable: true},
	{Pattern: "bitbucket.io", Description: "Bitbucket Pages - unclaimed repository", Detectable: true},
	{Pattern: "uservoice.com", Description: "UserVoice - unclaimed instance", Detectable: true},
	{Pattern: "statuspage.io", Description: "StatusPage - unclaimed page", Detectable: true},
	{Pattern: "readthedocs.io", Description: "ReadTheDocs - unclaimed project", Detectable: true},
	{Pattern: "gitbook.io", Description: "GitBook - unclaimed space", Detectable: true},
	{Pattern: "webflow.io", Description: "Webflow - unclaimed site", Detectable: true},
	{Pattern: "cargocollective.com", Description: "Cargo Collective - unclaimed site", Detectable: true},
	{Pattern: "readme.io", Description: "ReadMe - unclaimed docs", Detectable: true},
}

// legitTargets are CNAME targets that look like takeover candidates but are
// expected legitimate use (Mailchimp DKIM), never reported.
var legitTargets = []string{"mcsv.net"}

// MatchFingerprint returns the first fingerprint whose pattern appears in
// the target, or nil. Legitimate-use targets never match.
func MatchFingerprint(target string) *Fingerprint {
	lower := strings.ToLower(target)
	for _, skip := range legitTargets {
		if strings.Contains(lower, skip) {
			return nil
		}
	}
	for i := range fingerprints {
		if strings.Contains(lower, fingerprints[i].Pattern) {
			return &fingerprints[i]
		}
	}
	return nil
}
