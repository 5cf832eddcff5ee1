package domain

import "strings"

// Provider identifies a supported DNS hosting provider.
type Provider string

const (
	ProviderRoute53    Provider = "route53"
	ProviderCloudflare Provider = "cloudflare"
)

// ParseProvider returns the canonical Provider for a raw string, and whether
// the value names a supported provider.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderRoute53:
		return ProviderRoute53, true
	case ProviderCloudflare:
		return ProviderCloudflare, true
	}
	return "", false
}
