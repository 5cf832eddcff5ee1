package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

func desiredSet(keys ...domain.RecordKey) map[domain.RecordKey]struct{} {
	out := make(map[domain.RecordKey]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func TestReconcile_EndToEnd(t *testing.T) {
	desired := desiredSet(domain.KeyForValue("www.example.com", domain.TypeA, "1.2.3.4", ""))
	live := []domain.LiveRecord{
		{Name: "www.example.com", Type: domain.TypeA, Content: "1.2.3.4", ProviderID: "r1"},
		{Name: "old.example.com", Type: domain.TypeA, Content: "5.6.7.8", ProviderID: "r2"},
		{Name: "example.com", Type: domain.TypeNS, Content: "ns1.example.com", ProviderID: "r3"},
	}

	cs := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)

	require.Len(t, cs.ToDelete, 1)
	assert.Equal(t, "old.example.com", cs.ToDelete[0].Name)
	assert.Equal(t, "r2", cs.ToDelete[0].ProviderID)
	require.Len(t, cs.Satisfied, 1)
	assert.Equal(t, "www.example.com", cs.Satisfied[0].Name)
	assert.Empty(t, cs.Protected)
	assert.Empty(t, cs.Missing)
}

func TestReconcile_ApexNeverDeleted(t *testing.T) {
	live := []domain.LiveRecord{
		{Name: "example.com", Type: domain.TypeA, Content: "9.9.9.9", ProviderID: "r1"},
	}
	cs := Reconcile(nil, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	require.Len(t, cs.Protected, 1)
	assert.Equal(t, domain.ProtectApex, cs.Protected[0].Reason)
}

func TestReconcile_OwnershipMarkers(t *testing.T) {
	live := []domain.LiveRecord{
		{Name: "_external-dns.cdn.example.com", Type: domain.TypeTXT, Content: `"heritage=external-dns"`, ProviderID: "m1"},
		{Name: "cdn.example.com", Type: domain.TypeCNAME, Content: "d111.cloudfront.net", ProviderID: "r1"},
		{Name: "stale.example.com", Type: domain.TypeA, Content: "5.6.7.8", ProviderID: "r2"},
	}
	markers := OwnershipMarkers(live, DefaultMarkerPrefix)
	require.Contains(t, markers, "cdn.example.com")

	cs := Reconcile(nil, live, "example.com", markers, DefaultMarkerPrefix)

	require.Len(t, cs.ToDelete, 1)
	assert.Equal(t, "stale.example.com", cs.ToDelete[0].Name)

	reasons := map[string]domain.ProtectReason{}
	for _, p := range cs.Protected {
		reasons[p.Record.Name] = p.Reason
	}
	assert.Equal(t, domain.ProtectOwnershipMarker, reasons["_external-dns.cdn.example.com"])
	assert.Equal(t, domain.ProtectExternalOwner, reasons["cdn.example.com"])
}

func TestReconcile_InfrastructureNamesProtected(t *testing.T) {
	live := []domain.LiveRecord{
		{Name: "_acme-challenge.www.example.com", Type: domain.TypeTXT, Content: "token", ProviderID: "r1"},
		{Name: "_dmarc.example.com", Type: domain.TypeTXT, Content: "v=DMARC1; p=reject", ProviderID: "r2"},
		{Name: "selector1._domainkey.example.com", Type: domain.TypeCNAME, Content: "dkim.mcsv.net", ProviderID: "r3"},
	}
	cs := Reconcile(nil, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	require.Len(t, cs.Protected, 3)
	for _, p := range cs.Protected {
		assert.Equal(t, domain.ProtectInfrastructure, p.Reason)
	}
}

func TestReconcile_MXIndependence(t *testing.T) {
	// at the apex the undesired MX is caught by apex protection
	desired := desiredSet(domain.KeyForMX("example.com", 10, "mx1.example.com"))
	live := []domain.LiveRecord{
		{Name: "example.com", Type: domain.TypeMX, Content: "mx1.example.com", Priority: 10, ProviderID: "r1"},
		{Name: "example.com", Type: domain.TypeMX, Content: "mx2.example.com", Priority: 20, ProviderID: "r2"},
	}
	cs := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	require.Len(t, cs.Protected, 1)
	assert.Equal(t, "r2", cs.Protected[0].Record.ProviderID)

	// same shape under a subdomain shows the deletion path
	desired = desiredSet(domain.KeyForMX("mail.example.com", 10, "mx1.example.com"))
	live = []domain.LiveRecord{
		{Name: "mail.example.com", Type: domain.TypeMX, Content: "mx1.example.com", Priority: 10, ProviderID: "r1"},
		{Name: "mail.example.com", Type: domain.TypeMX, Content: "mx2.example.com", Priority: 20, ProviderID: "r2"},
	}
	cs = Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	require.Len(t, cs.ToDelete, 1)
	assert.Equal(t, "r2", cs.ToDelete[0].ProviderID)
	require.Len(t, cs.Satisfied, 1)
}

func TestReconcile_TXTQuoting(t *testing.T) {
	desired := desiredSet(domain.KeyForValue("spf.example.com", domain.TypeTXT, "v=spf1 include:_spf.example.com ~all", ""))
	live := []domain.LiveRecord{
		{Name: "spf.example.com", Type: domain.TypeTXT, Content: `"v=spf1 include:_spf.example.com ~all"`, ProviderID: "r1"},
	}
	cs := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	assert.Len(t, cs.Satisfied, 1)
	assert.Empty(t, cs.Missing)
}

func TestReconcile_MissingReportedNotActed(t *testing.T) {
	desired := desiredSet(
		domain.KeyForValue("www.example.com", domain.TypeA, "1.2.3.4", ""),
		domain.KeyForMX("mail.example.com", 10, "mx1.example.com"),
	)
	cs := Reconcile(desired, nil, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	assert.Empty(t, cs.Satisfied)
	require.Len(t, cs.Missing, 2)
	assert.False(t, cs.Clean())
}

func TestReconcile_EmptyInputs(t *testing.T) {
	cs := Reconcile(nil, nil, "example.com", nil, DefaultMarkerPrefix)
	assert.Empty(t, cs.ToDelete)
	assert.Empty(t, cs.Satisfied)
	assert.True(t, cs.Clean())

	// empty desired with non-apex, non-protected live yields all deletions
	live := []domain.LiveRecord{
		{Name: "a.example.com", Type: domain.TypeA, Content: "1.1.1.1", ProviderID: "r1"},
		{Name: "b.example.com", Type: domain.TypeA, Content: "2.2.2.2", ProviderID: "r2"},
	}
	cs = Reconcile(nil, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Len(t, cs.ToDelete, 2)
}

func TestReconcile_Idempotent(t *testing.T) {
	desired := desiredSet(
		domain.KeyForValue("www.example.com", domain.TypeA, "1.2.3.4", ""),
		domain.KeyForValue("missing.example.com", domain.TypeA, "9.9.9.9", ""),
		domain.KeyForValue("also.example.com", domain.TypeCNAME, "www.example.com", ""),
	)
	live := []domain.LiveRecord{
		{Name: "www.example.com", Type: domain.TypeA, Content: "1.2.3.4", ProviderID: "r1"},
		{Name: "gone.example.com", Type: domain.TypeA, Content: "5.6.7.8", ProviderID: "r2"},
	}
	first := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	second := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	assert.Equal(t, first, second)
}

func TestReconcile_SetIdentifierDistinguishes(t *testing.T) {
	desired := desiredSet(domain.KeyForValue("api.example.com", domain.TypeA, "1.2.3.4", "us-east"))
	live := []domain.LiveRecord{
		{Name: "api.example.com", Type: domain.TypeA, Content: "1.2.3.4", SetID: "us-east", ProviderID: "r1"},
		{Name: "api.example.com", Type: domain.TypeA, Content: "1.2.3.4", SetID: "eu-west", ProviderID: "r2"},
	}
	cs := Reconcile(desired, live, "example.com", nil, DefaultMarkerPrefix)
	require.Len(t, cs.ToDelete, 1)
	assert.Equal(t, "r2", cs.ToDelete[0].ProviderID)
	require.Len(t, cs.Satisfied, 1)
	assert.Equal(t, "us-east", cs.Satisfied[0].SetID)
}
