package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// Engine runs the retrieval strategy chain over document records.
type Engine struct {
	strategies    []Strategy
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity threshold for the semantic stage.
// Default is 0.60.
func WithMinSimilarity(min float32) Option {
	return func(e *Engine) error {
		e.minSimilarity = min
		return nil
	}
}

// NewEngine creates a search engine with the standard strategy chain:
// semantic, then pattern, then keyword-or.
func NewEngine(documents storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Engine, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	e := &Engine{
		minSimilarity: defaultMinSimilarity,
		logger:        slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.strategies = []Strategy{
		&semanticStrategy{
			documents:     documents,
			embedder:      provider.Embedder(),
			minSimilarity: e.minSimilarity,
		},
		&patternStrategy{documents: documents},
		&keywordStrategy{documents: documents},
	}

	return e, nil
}

// Search runs the strategy chain and returns the first non-empty result
// set. Returns up to limit results per strategy.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error) {
	return e.SearchWithMonitor(ctx, query, limit, nil)
}

// SearchWithMonitor runs the strategy chain with monitoring callbacks at
// each stage.
//
// A failing strategy is logged and the chain continues; its error
// surfaces only if every strategy fails, wrapped in ErrSearchFailed. An
// empty result set from a healthy chain returns an empty slice and nil.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, limit int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	monitor.Start(query)

	var failures []error
	for _, strategy := range e.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kind := strategy.Kind()
		monitor.StrategyStart(kind)

		results, err := strategy.Search(ctx, query, limit)
		if err != nil {
			e.logger.Warn("strategy failed, trying next", "strategy", kind.String(), "err", err)
			monitor.StrategyError(kind, err)
			failures = append(failures, &StrategyError{Strategy: kind, Err: err})
			continue
		}

		monitor.StrategyResults(kind, results)
		if len(results) > 0 {
			e.logger.Debug("strategy answered query",
				"strategy", kind.String(), "results", len(results))
			monitor.Finish(results)
			return results, nil
		}
	}

	if len(failures) == len(e.strategies) {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, errors.Join(failures...))
	}

	e.logger.Debug("no strategy found results", "query", query)
	empty := []*core.SearchResult{}
	monitor.Finish(empty)
	return empty, nil
}
