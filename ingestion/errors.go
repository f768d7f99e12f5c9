package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")
)

// EmbeddingError indicates that embedding generation failed for a document.
type EmbeddingError struct {
	// Id is the document that could not be embedded.
	Id string

	// Err is the underlying embedder error.
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed for %q: %v", e.Id, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
