package search

import (
	"context"
	"regexp"

	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// patternStrategy retrieves documents by case-insensitive regex match on
// title and content. Queries that are not valid regular expressions are
// matched literally.
type patternStrategy struct {
	documents storage.DocumentRepository
}

var _ Strategy = (*patternStrategy)(nil)

func (s *patternStrategy) Kind() core.Strategy {
	return core.StrategyPattern
}

func (s *patternStrategy) Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error) {
	pattern, err := regexp.Compile("(?i)" + query)
	if err != nil {
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}

	records, err := s.documents.FindMatching(ctx, pattern, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, len(records))
	for i, record := range records {
		results[i] = &core.SearchResult{
			Record:   record,
			Strategy: core.StrategyPattern,
		}
	}
	return results, nil
}
