package search

import (
	"context"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// defaultMinSimilarity filters semantic matches below this cosine
// similarity against the query embedding.
const defaultMinSimilarity = 0.60

// semanticStrategy retrieves documents by vector similarity.
type semanticStrategy struct {
	documents     storage.DocumentRepository
	embedder      ai.Embedder
	minSimilarity float32
}

var _ Strategy = (*semanticStrategy)(nil)

func (s *semanticStrategy) Kind() core.Strategy {
	return core.StrategySemantic
}

func (s *semanticStrategy) Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error) {
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	embedding = core.NormalizeVector(embedding)

	matches, err := s.documents.FindSimilar(ctx, embedding, s.minSimilarity, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, len(matches))
	for i, match := range matches {
		results[i] = &core.SearchResult{
			Record:   match.Record,
			Score:    match.Score,
			Strategy: core.StrategySemantic,
		}
	}
	return results, nil
}
