// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package corpus assembles the document store, index manager, ingestion
// pipeline and search engine over a single embedded database.
package corpus

import (
	"context"
	"log/slog"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/ai/openai"
	"github.com/poiesic/corpus/index"
	"github.com/poiesic/corpus/ingestion"
	"github.com/poiesic/corpus/search"
	"github.com/poiesic/corpus/storage"
	"github.com/poiesic/corpus/storage/badger"
)

type Database struct {
	backend   *badger.Backend
	docRepo   storage.DocumentRepository
	indexRepo storage.IndexRepository
	provider  ai.Provider
	aiConfig  *ai.Config
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from config. The Database takes ownership and closes it.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory runs the store without persistence.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:   backend,
		docRepo:   badger.NewDocumentRepository(backend),
		indexRepo: badger.NewIndexRepository(backend),
		provider:  provider,
		aiConfig:  options.aiConfig,
		logger:    slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) Documents() storage.DocumentRepository {
	return db.docRepo
}

func (db *Database) Indexes() storage.IndexRepository {
	return db.indexRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

// EnsureIndexes registers the standard index definitions, sized to the
// configured embedding dimensions. Safe to call on every startup.
func (db *Database) EnsureIndexes(ctx context.Context) error {
	manager := index.NewManager(db.indexRepo)
	return manager.EnsureIndexes(ctx, index.DefaultSpecs(db.aiConfig.Dimensions)...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.docRepo, db.provider, opts...)
}

func (db *Database) NewSearchEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.docRepo, db.provider, opts...)
}
