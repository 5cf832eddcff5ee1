package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dns_zones", cfg.ZoneDir)
	assert.Equal(t, "_external-dns.", cfg.MarkerPrefix)
	assert.Equal(t, 1024, cfg.LookupCacheSize)
	assert.Empty(t, cfg.TunnelFile)
	assert.Empty(t, cfg.HistoryDB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ZONECTL_ENV", "dev")
	t.Setenv("ZONECTL_LOG_LEVEL", "debug")
	t.Setenv("ZONECTL_ZONE_DIR", "/srv/zones")
	t.Setenv("ZONECTL_TUNNEL_FILE", "/srv/tunnels.yml")
	t.Setenv("ZONECTL_MARKER_PREFIX", "_owned.")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/zones", cfg.ZoneDir)
	assert.Equal(t, "/srv/tunnels.yml", cfg.TunnelFile)
	assert.Equal(t, "_owned.", cfg.MarkerPrefix)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ZONECTL_ENV", "staging")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidMarkerPrefix(t *testing.T) {
	cases := map[string]string{
		"no underscore": "owned.",
		"no dot":        "_owned",
		"too short":     "_.",
	}
	for name, prefix := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("ZONECTL_MARKER_PREFIX", prefix)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidMarkerPrefixShape(t *testing.T) {
	t.Setenv("ZONECTL_MARKER_PREFIX", "_external-dns.")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "_external-dns.", cfg.MarkerPrefix)
}
