package domain

// LiveRecord is one record as reported by a provider: the fields needed to
// build an identity key plus the opaque provider-side ID a mutation executor
// would delete by.
type LiveRecord struct {
	Name     string     `json:"name"`
	Type     RecordType `json:"type"`
	Content  string     `json:"content"`
	Priority int        `json:"priority,omitempty"`
	SetID    string     `json:"set_identifier,omitempty"`

	// ProviderID is the raw provider record identifier. The reconciler
	// carries it through undisturbed; it never participates in identity.
	ProviderID string `json:"provider_id,omitempty"`
}

// Key builds the record's identity key using the same construction rules as
// desired-state normalization, so live and desired records compare directly.
func (r LiveRecord) Key() RecordKey {
	if r.Type == TypeMX {
		return KeyForMX(r.Name, r.Priority, r.Content)
	}
	return KeyForValue(r.Name, r.Type, r.Content, r.SetID)
}
