package domain

import (
	"fmt"
	"strings"
)

// RecordKey is the identity of one desired or live record: the tuple of
// fields that determines whether two records denote "the same" DNS record.
// It is comparable and safe to use as a map key. Priority is meaningful only
// for MX keys; SetID only when the provider or spec carries a set identifier.
type RecordKey struct {
	Name     string     `json:"name"`
	Type     RecordType `json:"type"`
	Content  string     `json:"content,omitempty"`
	Priority int        `json:"priority,omitempty"`
	SetID    string     `json:"set_identifier,omitempty"`
}

// NormalizeContent canonicalizes record content for comparison. Providers may
// wrap TXT content in a pair of double quotes; one enclosing pair is stripped
// so '"v=spf1 ..."' and 'v=spf1 ...' compare equal.
func NormalizeContent(t RecordType, content string) string {
	if t == TypeTXT && len(content) >= 2 &&
		strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		return content[1 : len(content)-1]
	}
	return content
}

// KeyForValue builds the identity key for a literal-content record.
func KeyForValue(fqdn string, t RecordType, content, setID string) RecordKey {
	return RecordKey{
		Name:    fqdn,
		Type:    t,
		Content: NormalizeContent(t, content),
		SetID:   setID,
	}
}

// KeyForMX builds the identity key for one MX (priority, value) pair.
func KeyForMX(fqdn string, priority int, value string) RecordKey {
	return RecordKey{
		Name:     fqdn,
		Type:     TypeMX,
		Content:  value,
		Priority: priority,
	}
}

// KeyForTunnel builds the identity key for a tunnel-backed record. Tunnel
// records have no literal content; they are tracked by tunnel name because
// their live representation is a provider-managed CNAME this engine does not
// independently verify.
func KeyForTunnel(fqdn, tunnelName string) RecordKey {
	return RecordKey{
		Name:    fqdn,
		Type:    TypeTUNNEL,
		Content: tunnelName,
	}
}

// String renders the key for human-readable output.
func (k RecordKey) String() string {
	var b strings.Builder
	b.WriteString(k.Name)
	b.WriteByte(' ')
	b.WriteString(string(k.Type))
	if k.Type == TypeMX {
		fmt.Fprintf(&b, " %d", k.Priority)
	}
	if k.Content != "" {
		b.WriteByte(' ')
		b.WriteString(k.Content)
	}
	if k.SetID != "" {
		fmt.Fprintf(&b, " (set %s)", k.SetID)
	}
	return b.String()
}
