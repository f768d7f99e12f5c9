package badger

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Exists reports whether a record with the given id is stored.
func (r *DocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeRecordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// Get retrieves a single record by id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Upsert inserts or replaces a record keyed by its id. Secondary indexes
// registered through the IndexRepository are maintained in the same
// transaction. A write that changes nothing is a no-op.
func (r *DocumentRepository) Upsert(ctx context.Context, record *core.Record) error {
	if err := core.ValidateRecord(record); err != nil {
		return err
	}

	if record.ContentHash == 0 {
		record.ContentHash = core.FingerprintContent(record.Content)
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		specs, err := readIndexSpecs(tx)
		if err != nil {
			return err
		}

		if vec := vectorSpec(specs); vec != nil && len(record.Vector) > 0 {
			if len(record.Vector) != vec.Dimensions {
				return storage.ErrDimensionMismatch
			}
		}

		key := makeRecordKey(record.Id)
		old, err := readRecord(tx, key)
		if err != nil {
			return err
		}

		if old != nil && recordUnchanged(old, record) {
			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = old.UpdatedAt
			return nil
		}

		now := time.Now().UTC()
		if old == nil {
			record.InsertedAt = now
		} else {
			record.InsertedAt = old.InsertedAt
		}
		record.UpdatedAt = now

		if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
			return err
		}

		if hasKind(specs, core.IndexKindText) {
			if err := updateTokenIndex(tx, old, record); err != nil {
				return err
			}
		}
		if hasKind(specs, core.IndexKindKeyword) {
			if err := updateCategoryIndex(tx, old, record); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// Count returns the number of stored records.
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// All streams every stored record to fn in key order.
func (r *DocumentRepository) All(ctx context.Context, fn func(record *core.Record) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record *core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(record); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// FindSimilar delegates to the backend.
func (r *DocumentRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// FindMatching finds records whose title or content matches the compiled
// pattern.
func (r *DocumentRepository) FindMatching(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
	if pattern == nil || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			var record *core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if pattern.MatchString(record.Title) || pattern.MatchString(record.Content) {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindByTokens finds records containing at least one of the given tokens.
// Uses the inverted token index when a text index is registered, otherwise
// falls back to a full scan.
func (r *DocumentRepository) FindByTokens(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
	if len(tokens) == 0 || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		specs, err := readIndexSpecs(tx)
		if err != nil {
			return err
		}

		if !hasKind(specs, core.IndexKindText) {
			results, err = scanByTokens(tx, tokens, limit)
			return err
		}

		seen := make(map[string]bool)
		for _, token := range tokens {
			ids, err := scanCompositeIndex(tx, makePartialTokenKey(token))
			if err != nil {
				return err
			}
			for _, id := range ids {
				if seen[id] {
					continue
				}
				seen[id] = true

				record, err := readRecord(tx, makeRecordKey(id))
				if err != nil {
					return err
				}
				if record == nil {
					continue
				}
				results = append(results, record)
				if len(results) >= limit {
					return nil
				}
			}
		}
		return nil
	}, false)
	return results, err
}

// FindByCategory finds records with the given category. Uses the category
// index when a keyword index is registered, otherwise falls back to a full
// scan.
func (r *DocumentRepository) FindByCategory(ctx context.Context, category string, limit int) ([]*core.Record, error) {
	if category == "" || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		specs, err := readIndexSpecs(tx)
		if err != nil {
			return err
		}

		if !hasKind(specs, core.IndexKindKeyword) {
			results, err = scanByCategory(tx, category, limit)
			return err
		}

		ids, err := scanCompositeIndex(tx, makePartialCategoryKey(category))
		if err != nil {
			return err
		}
		for _, id := range ids {
			record, err := readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			results = append(results, record)
			if len(results) >= limit {
				return nil
			}
		}
		return nil
	}, false)
	return results, err
}

// readRecord reads a record by key, returning nil if not found.
func readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalRecord(val)
		return err
	})
	return record, err
}

// recordUnchanged reports whether a write would leave the stored record
// identical in everything but timestamps.
func recordUnchanged(old, record *core.Record) bool {
	return old.ContentHash == record.ContentHash &&
		old.Title == record.Title &&
		old.Category == record.Category &&
		slices.Equal(old.Vector, record.Vector)
}

// indexTokens returns the distinct tokens of a record's title and content.
// Both fields feed the inverted token index so keyword search sees titles.
func indexTokens(record *core.Record) []string {
	set := core.TokenSet(record.Title)
	for token := range core.TokenSet(record.Content) {
		set[token] = true
	}
	tokens := make([]string, 0, len(set))
	for token := range set {
		tokens = append(tokens, token)
	}
	return tokens
}

// updateTokenIndex rewrites the inverted token index entries for a record.
func updateTokenIndex(tx *badger.Txn, old, record *core.Record) error {
	if old != nil {
		for _, token := range indexTokens(old) {
			if err := tx.Delete(makeTokenKey(token, old.Id)); err != nil {
				return err
			}
		}
	}
	for _, token := range indexTokens(record) {
		if err := tx.Set(makeTokenKey(token, record.Id), nil); err != nil {
			return err
		}
	}
	return nil
}

// updateCategoryIndex rewrites the category index entry for a record.
func updateCategoryIndex(tx *badger.Txn, old, record *core.Record) error {
	if old != nil && old.Category != "" && old.Category != record.Category {
		if err := tx.Delete(makeCategoryKey(old.Category, old.Id)); err != nil {
			return err
		}
	}
	if record.Category != "" {
		return tx.Set(makeCategoryKey(record.Category, record.Id), nil)
	}
	return nil
}

// scanCompositeIndex collects record ids under a composite index partial key.
func scanCompositeIndex(tx *badger.Txn, partial []byte) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = partial
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []string
	for iter.Rewind(); iter.Valid(); iter.Next() {
		ids = append(ids, idFromCompositeKey(iter.Item().Key(), partial))
	}
	return ids, nil
}

// scanByTokens is the fallback token search used when no text index is
// registered.
func scanByTokens(tx *badger.Txn, tokens []string, limit int) ([]*core.Record, error) {
	var results []*core.Record
	err := scanRecords(tx, func(record *core.Record) bool {
		if core.ContainsAnyToken(record.Title, tokens) || core.ContainsAnyToken(record.Content, tokens) {
			results = append(results, record)
		}
		return len(results) < limit
	})
	return results, err
}

// scanByCategory is the fallback category search used when no keyword index
// is registered.
func scanByCategory(tx *badger.Txn, category string, limit int) ([]*core.Record, error) {
	var results []*core.Record
	err := scanRecords(tx, func(record *core.Record) bool {
		if record.Category == category {
			results = append(results, record)
		}
		return len(results) < limit
	})
	return results, err
}

// scanRecords iterates all stored records in key order, stopping when fn
// returns false.
func scanRecords(tx *badger.Txn, fn func(record *core.Record) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(recordPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var record *core.Record
		err := iter.Item().Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalRecord(val)
			return err
		})
		if err != nil {
			return err
		}
		if !fn(record) {
			return nil
		}
	}
	return nil
}
