package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

func TestDesiredKeys_SkipsProviderManagedTypes(t *testing.T) {
	zone := domain.ZoneDefinition{
		Name: "example.com",
		Records: []domain.RecordSpec{
			{Type: domain.TypeNS, Name: "@", Values: []string{"ns1.example.com"}},
			{Type: domain.TypeSOA, Name: "@", Values: []string{"ns1.example.com admin.example.com 1 2 3 4 5"}},
			{Type: domain.TypeA, Name: "www", Values: []string{"1.2.3.4"}},
		},
	}
	keys, err := DesiredKeys(zone)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.Contains(t, keys, domain.KeyForValue("www.example.com", domain.TypeA, "1.2.3.4", ""))
}

func TestDesiredKeys_MXIndependence(t *testing.T) {
	zone := domain.ZoneDefinition{
		Name: "example.com",
		Records: []domain.RecordSpec{
			{Type: domain.TypeMX, Name: "@", MXValues: []domain.MXValue{
				{Priority: 10, Value: "mx1.example.com"},
				{Priority: 20, Value: "mx2.example.com"},
			}},
		},
	}
	keys, err := DesiredKeys(zone)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, domain.KeyForMX("example.com", 10, "mx1.example.com"))
	assert.Contains(t, keys, domain.KeyForMX("example.com", 20, "mx2.example.com"))
}

func TestDesiredKeys_TunnelAndSetIdentifier(t *testing.T) {
	zone := domain.ZoneDefinition{
		Name: "example.com",
		Records: []domain.RecordSpec{
			{Type: domain.TypeTUNNEL, Name: "app", Tunnel: &domain.TunnelRef{Name: "app", Service: "http://localhost:8080"}},
			{Type: domain.TypeA, Name: "api", Values: []string{"1.2.3.4"}, SetIdentifier: "us-east"},
			{Type: domain.TypeA, Name: "api", Values: []string{"1.2.3.4"}, SetIdentifier: "eu-west"},
		},
	}
	keys, err := DesiredKeys(zone)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, domain.KeyForTunnel("app.example.com", "app"))
}

func TestDesiredKeys_Deterministic(t *testing.T) {
	zone := domain.ZoneDefinition{
		Name: "example.com",
		Records: []domain.RecordSpec{
			{Type: domain.TypeTXT, Name: "@", Values: []string{`"v=spf1 ~all"`, "token=abc"}},
			{Type: domain.TypeA, Name: "www", Values: []string{"1.2.3.4", "5.6.7.8"}},
		},
	}
	first, err := DesiredKeys(zone)
	require.NoError(t, err)
	second, err := DesiredKeys(zone)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// TXT quoting normalized during expansion
	assert.Contains(t, first, domain.KeyForValue("example.com", domain.TypeTXT, "v=spf1 ~all", ""))
}

func TestDesiredKeys_EmptyNameFails(t *testing.T) {
	zone := domain.ZoneDefinition{
		Name:    "example.com",
		Records: []domain.RecordSpec{{Type: domain.TypeA, Name: "", Values: []string{"1.2.3.4"}}},
	}
	_, err := DesiredKeys(zone)
	assert.Error(t, err)
}
