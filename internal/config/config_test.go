package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 800, cfg.Chunker.Size)
	assert.Equal(t, 150, cfg.Chunker.Overlap)
	assert.Equal(t, 768, cfg.Embedder.VectorSize)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "transcript_chunks", cfg.VectorStore.Collection)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, 1, cfg.Retrieval.ContextWidth)
}

func TestLoadConfigFull(t *testing.T) {
	raw := `
chunker:
  size: 100
  overlap: 20
embedder:
  type: ollama
  base_url: http://localhost:11434
  model: nomic-embed-text
  vector_size: 384
llm:
  type: openai
  base_url: https://openrouter.ai/api/v1
  api_key_env: OPENROUTER_API_KEY
  model: some-model
vector_store:
  type: qdrant
  collection: yt_chunks
  qdrant:
    url: http://localhost:6333
    timeout_secs: 5
retrieval:
  top_k: 6
  context_width: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Chunker.Size)
	assert.Equal(t, 20, cfg.Chunker.Overlap)
	assert.Equal(t, "ollama", cfg.Embedder.Type)
	assert.Equal(t, 384, cfg.Embedder.VectorSize)
	assert.Equal(t, "OPENROUTER_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	assert.Equal(t, "yt_chunks", cfg.VectorStore.Collection)
	require.NotNil(t, cfg.VectorStore.Qdrant)
	assert.Equal(t, "http://localhost:6333", cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, 6, cfg.Retrieval.TopK)
	assert.Equal(t, 3, cfg.Retrieval.ContextWidth)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
