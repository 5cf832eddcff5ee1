package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeZone(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

const cleanZoneYAML = `
zone_name: example.com
providers:
  - cloudflare
records:
  - type: A
    name: www
    values:
      - "192.0.2.1"
`

func TestValidate_CleanZoneSucceeds(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "example.com.yml", cleanZoneYAML)

	out, err := runCommand(t, "validate", "--zone-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s), 0 error(s)")
}

func TestValidate_BrokenZoneFails(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "example.com.yml", `
zone_name: example.com
providers:
  - cloudflare
records:
  - type: A
    name: www
`)

	out, err := runCommand(t, "validate", "--zone-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "ERROR")
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "example.com.yml", `
zone_name: example.com
providers:
  - route53
records:
  - type: A
    name: www
    proxied: false
    values:
      - "192.0.2.1"
`)

	out, err := runCommand(t, "validate", "--zone-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "WARN")
}

func TestPlan_CleanWhenSnapshotMatchesDesired(t *testing.T) {
	zoneDir := t.TempDir()
	writeZone(t, zoneDir, "example.com.yml", cleanZoneYAML)

	snapDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(snapDir, "example.com.cloudflare.json"),
		[]byte(`[{"id": "cf1", "name": "www.example.com", "type": "A", "content": "192.0.2.1"}]`),
		0o644,
	))

	out, err := runCommand(t, "plan", "--zone-dir", zoneDir, "--snapshot-dir", snapDir)
	require.NoError(t, err)
	assert.Contains(t, out, "example.com: clean")
}

func TestPlan_RequiresSnapshotDir(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "example.com.yml", cleanZoneYAML)

	_, err := runCommand(t, "plan", "--zone-dir", dir)
	assert.Error(t, err)
}

func TestScan_RejectsUnknownSeverity(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "example.com.yml", cleanZoneYAML)

	_, err := runCommand(t, "scan", "--zone-dir", dir, "--fail-on-severity", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, appName+" version "+version)
}
