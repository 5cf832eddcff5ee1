package domain

// ProtectReason codes why a live record was exempted from deletion.
type ProtectReason string

const (
	// ProtectApex marks records whose name equals the zone apex; root
	// records are never auto-deleted.
	ProtectApex ProtectReason = "apex"

	// ProtectOwnershipMarker marks TXT records carrying the ownership
	// marker prefix of an external DNS automation process.
	ProtectOwnershipMarker ProtectReason = "ownership-marker"

	// ProtectExternalOwner marks records whose name an external process
	// asserts ownership of via a marker record.
	ProtectExternalOwner ProtectReason = "external-owner"

	// ProtectInfrastructure marks ACME challenge, DMARC and DKIM records.
	ProtectInfrastructure ProtectReason = "infrastructure"
)

// ProtectedRecord is a live record exempt from deletion, with the reason.
type ProtectedRecord struct {
	Record LiveRecord    `json:"record"`
	Reason ProtectReason `json:"reason"`
}

// ChangeSet is the outcome of reconciling one zone's desired state against a
// live snapshot. It is a decision, not an action: nothing here has been
// applied. ToDelete, Satisfied and Protected partition the manageable live
// records; Missing reports desired records the provider does not yet serve
// (creation drift, acted on by the IaC pipeline, not by this engine).
type ChangeSet struct {
	Zone      string            `json:"zone"`
	ToDelete  []LiveRecord      `json:"to_delete,omitempty"`
	Satisfied []RecordKey       `json:"satisfied,omitempty"`
	Protected []ProtectedRecord `json:"protected,omitempty"`
	Missing   []RecordKey       `json:"missing,omitempty"`
}

// Clean reports whether live state already matches desired state exactly:
// nothing to delete and nothing missing.
func (c ChangeSet) Clean() bool {
	return len(c.ToDelete) == 0 && len(c.Missing) == 0
}
