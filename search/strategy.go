package search

import (
	"context"

	"github.com/poiesic/corpus/core"
)

// Strategy is one stage in the retrieval chain.
type Strategy interface {
	// Kind identifies the strategy in results and monitoring.
	Kind() core.Strategy

	// Search runs the strategy, returning up to limit results.
	// An empty result set with a nil error means "nothing found, try the
	// next strategy".
	Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error)
}
