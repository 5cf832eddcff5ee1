package tunnels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPath(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnels.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  tunnel_id: 11111111-2222-3333-4444-555555555555
monitoring:
  tunnel_id: abc
`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "abc", got["monitoring"].ID)
}

func TestLoad_DottedNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnels.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
edge.internal:
  tunnel_id: 11111111-2222-3333-4444-555555555555
`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", got["edge.internal"].ID)
}

func TestLoad_BadEntries(t *testing.T) {
	cases := map[string]string{
		"missing tunnel_id": "app:\n  name: nope\n",
		"non-object entry":  "app: just-a-string\n",
		"blank tunnel_id":   "app:\n  tunnel_id: \"  \"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tunnels.yml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
