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


package index

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// Manager registers index definitions with storage.
type Manager struct {
	indexes storage.IndexRepository
	logger  *slog.Logger
}

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used by the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given index repository.
func NewManager(indexes storage.IndexRepository, opts ...ManagerOption) *Manager {
	m := &Manager{
		indexes: indexes,
		logger:  slog.Default().With("component", "index-manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureIndexes registers every definition, treating already-registered
// equivalent definitions as success. Safe to call on every startup.
//
// Any other registration failure stops the run and is returned as a
// *SetupError naming the definition that failed.
func (m *Manager) EnsureIndexes(ctx context.Context, specs ...*core.IndexSpec) error {
	for _, spec := range specs {
		err := m.indexes.CreateIndex(ctx, spec)
		if errors.Is(err, storage.ErrIndexExists) {
			m.logger.Debug("index already registered", "index", spec.Name)
			continue
		}
		if err != nil {
			m.logger.Error("index registration failed", "index", spec.Name, "err", err)
			return &SetupError{Name: spec.Name, Err: err}
		}
		m.logger.Info("index registered", "index", spec.Name, "kind", spec.Kind.String())
	}
	return nil
}

// DefaultSpecs returns the standard index definitions for a document
// collection: a text index and a vector index on content, and a keyword
// index on category. The vector parameters follow common IVF defaults.
func DefaultSpecs(dimensions int) []*core.IndexSpec {
	return []*core.IndexSpec{
		{
			Name:  "content_text",
			Field: "content",
			Kind:  core.IndexKindText,
		},
		{
			Name:  "category_keyword",
			Field: "category",
			Kind:  core.IndexKindKeyword,
		},
		{
			Name:           "content_vector",
			Field:          "content",
			Kind:           core.IndexKindVector,
			Dimensions:     dimensions,
			Metric:         core.MetricCosine,
			Lists:          100,
			M:              16,
			EfConstruction: 64,
			EfSearch:       40,
		},
	}
}
