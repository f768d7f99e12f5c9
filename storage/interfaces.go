package storage

import (
	"context"
	"regexp"

	"github.com/poiesic/corpus/core"
)

// DocumentRepository provides operations for managing document records.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// Exists reports whether a record with the given id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Get retrieves a single record by id.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*core.Record, error)

	// Upsert inserts or replaces a record keyed by its id.
	// Sets InsertedAt on first write and UpdatedAt on every write; an
	// existing record's InsertedAt is preserved. A write whose content
	// hash, vector, title and category all match the stored record is a
	// no-op and leaves UpdatedAt untouched. Secondary indexes registered
	// through the IndexRepository are maintained in the same transaction.
	Upsert(ctx context.Context, record *core.Record) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// All streams every stored record to fn in key order. Iteration stops
	// when fn returns an error or the context is cancelled.
	All(ctx context.Context, fn func(record *core.Record) error) error

	// FindSimilar finds records whose vectors are similar to the given
	// vector. Returns records with similarity >= minSimilarity, up to
	// limit results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)

	// FindMatching finds records whose title or content matches the
	// compiled pattern, up to limit results, in key order.
	FindMatching(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error)

	// FindByTokens finds records whose title or content contains at least
	// one of the given tokens, up to limit results. Uses the inverted token
	// index when a text index is registered, otherwise scans.
	FindByTokens(ctx context.Context, tokens []string, limit int) ([]*core.Record, error)

	// FindByCategory finds records with the given category, up to limit
	// results. Uses the category index when a keyword index is registered,
	// otherwise scans.
	FindByCategory(ctx context.Context, category string, limit int) ([]*core.Record, error)
}

// IndexRepository provides operations for managing index definitions.
type IndexRepository interface {
	// CreateIndex registers a new index definition and backfills its
	// entries for records already stored.
	// Returns ErrIndexExists if an equivalent index is already registered,
	// ErrIndexConflict if the name is taken by a different definition.
	CreateIndex(ctx context.Context, spec *core.IndexSpec) error

	// GetIndex retrieves an index definition by name.
	// Returns ErrNotFound if no such index is registered.
	GetIndex(ctx context.Context, name string) (*core.IndexSpec, error)

	// ListIndexes returns all registered index definitions in name order.
	ListIndexes(ctx context.Context) ([]*core.IndexSpec, error)
}
