package search

import (
	"context"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// keywordStrategy retrieves documents containing any token of the query.
// This is the last, broadest stage of the chain.
type keywordStrategy struct {
	documents storage.DocumentRepository
}

var _ Strategy = (*keywordStrategy)(nil)

func (s *keywordStrategy) Kind() core.Strategy {
	return core.StrategyKeywordOr
}

func (s *keywordStrategy) Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error) {
	tokens := core.Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	records, err := s.documents.FindByTokens(ctx, tokens, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, len(records))
	for i, record := range records {
		results[i] = &core.SearchResult{
			Record:   record,
			Strategy: core.StrategyKeywordOr,
		}
	}
	return results, nil
}
