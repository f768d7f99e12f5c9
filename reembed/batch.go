package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// BatchProcessor handles embedding generation for batches of document records.
type BatchProcessor struct {
	repo           storage.DocumentRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.DocumentRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of records and writes them back.
// Vectors are normalized after embedding so dot product remains a valid
// cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	for i := range records {
		records[i].Vector = core.NormalizeVector(embeddings[i])
	}

	for _, record := range records {
		if err := bp.repo.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to update record %q: %w", record.Id, err)
		}
	}

	return nil
}
