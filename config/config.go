// Package config loads the application configuration from YAML.
//
// Configuration is read once at startup and handed to components as
// explicit structs; nothing below the command layer reads files or the
// environment.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StoreConfig configures the document store backend.
type StoreConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `yaml:"path"`

	// InMemory runs the store without persistence, for tests and demos.
	InMemory bool `yaml:"in_memory"`
}

// EmbedderConfig configures the embedding service.
type EmbedderConfig struct {
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// SearchConfig configures the query engine.
type SearchConfig struct {
	// Limit is the default number of results per strategy.
	Limit int `yaml:"limit"`

	// MinSimilarity is the semantic strategy's score threshold.
	MinSimilarity float32 `yaml:"min_similarity"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	// PoolSize is the number of concurrent ingestion workers.
	// Zero uses the pipeline default.
	PoolSize int `yaml:"pool_size"`
}

// RouterRule is one row of the routing table.
type RouterRule struct {
	Agent    string   `yaml:"agent"`
	Keywords []string `yaml:"keywords"`
}

// RouterConfig configures text classification onto agents.
type RouterConfig struct {
	Fallback string       `yaml:"fallback"`
	Rules    []RouterRule `yaml:"rules"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Store    StoreConfig    `yaml:"store"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Search   SearchConfig   `yaml:"search"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Router   RouterConfig   `yaml:"router"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = "corpus.db"
	}
	if cfg.Embedder.Host == "" {
		cfg.Embedder.Host = "http://localhost:11434/v1"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "embeddinggemma"
	}
	if cfg.Embedder.Dimensions == 0 {
		cfg.Embedder.Dimensions = 1536
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = 10
	}
	if cfg.Search.MinSimilarity == 0 {
		cfg.Search.MinSimilarity = 0.60
	}
	if cfg.Router.Fallback == "" {
		cfg.Router.Fallback = "triage"
	}
	if len(cfg.Router.Rules) == 0 {
		cfg.Router.Rules = []RouterRule{
			{Agent: "refund", Keywords: []string{"refund", "return", "money-back", "chargeback"}},
			{Agent: "billing", Keywords: []string{"billing", "invoice", "payment", "charge", "subscription"}},
		}
	}
}
