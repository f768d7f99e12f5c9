package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "corpus.db", cfg.Store.Path)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Embedder.Host)
	assert.Equal(t, 1536, cfg.Embedder.Dimensions)
	assert.Equal(t, 10, cfg.Search.Limit)
	assert.InDelta(t, 0.60, cfg.Search.MinSimilarity, 0.0001)
	assert.Equal(t, "triage", cfg.Router.Fallback)
	require.Len(t, cfg.Router.Rules, 2)
	assert.Equal(t, "refund", cfg.Router.Rules[0].Agent)
}

func TestLoadAppliesPartialDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  path: /var/lib/corpus
embedder:
  model: text-embedding-3-small
search:
  limit: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/corpus", cfg.Store.Path)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Embedder.Host)
	assert.Equal(t, 25, cfg.Search.Limit)
	assert.Equal(t, "triage", cfg.Router.Fallback)
}

func TestLoadMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Store.InMemory = true
	cfg.Router.Rules = []RouterRule{{Agent: "orders", Keywords: []string{"order"}}}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Store.InMemory)
	assert.Equal(t, "orders", loaded.Router.Rules[0].Agent)
}
