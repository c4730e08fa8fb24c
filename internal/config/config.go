package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// LLMConfig configures one OpenAI-compatible or Ollama endpoint. APIKeyEnv
// names the environment variable holding the key.
type LLMConfig struct {
	Type      string `yaml:"type"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

type EmbedderConfig struct {
	LLMConfig  `yaml:",inline"`
	VectorSize int `yaml:"vector_size"`
}

type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type PostgresConfig struct {
	DSN         string `yaml:"dsn"`
	PasswordEnv string `yaml:"password_env"`
	Debug       bool   `yaml:"debug"`
}

type ChromemConfig struct {
	Path string `yaml:"path"`
}

type VectorStoreConfig struct {
	Type       string          `yaml:"type"`
	Collection string          `yaml:"collection"`
	Qdrant     *QdrantConfig   `yaml:"qdrant,omitempty"`
	Postgres   *PostgresConfig `yaml:"postgres,omitempty"`
	Chromem    *ChromemConfig  `yaml:"chromem,omitempty"`
}

type RetrievalConfig struct {
	TopK         int `yaml:"top_k"`
	ContextWidth int `yaml:"context_width"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	LLM         LLMConfig         `yaml:"llm"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 800
		if cfg.Chunker.Overlap == 0 {
			cfg.Chunker.Overlap = 150
		}
	}
	if cfg.Embedder.VectorSize == 0 {
		cfg.Embedder.VectorSize = 768
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "transcript_chunks"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Retrieval.ContextWidth == 0 {
		cfg.Retrieval.ContextWidth = 1
	}
}
