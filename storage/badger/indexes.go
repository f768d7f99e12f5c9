package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
type IndexRepository struct {
	backend *Backend
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates a new IndexRepository.
func NewIndexRepository(backend *Backend) *IndexRepository {
	return &IndexRepository{backend: backend}
}

// CreateIndex registers a new index definition and backfills its entries
// for records already stored.
//
// Two definitions are equivalent when they share a name and full definition,
// or when they cover the same (field, kind) pair under different names.
// Equivalent definitions return ErrIndexExists; a name collision with a
// different definition returns ErrIndexConflict.
func (r *IndexRepository) CreateIndex(ctx context.Context, spec *core.IndexSpec) error {
	if err := core.ValidateIndexSpec(spec); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := readIndexSpecs(tx)
		if err != nil {
			return err
		}

		for _, other := range existing {
			if other.Name == spec.Name {
				if *other == *spec {
					return storage.ErrIndexExists
				}
				return storage.ErrIndexConflict
			}
			if other.Field == spec.Field && other.Kind == spec.Kind {
				return storage.ErrIndexExists
			}
		}

		if err := tx.Set(makeIndexKey(spec.Name), storage.MarshalIndexSpec(spec)); err != nil {
			return err
		}

		if err := backfillIndex(tx, spec); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetIndex retrieves an index definition by name.
func (r *IndexRepository) GetIndex(ctx context.Context, name string) (*core.IndexSpec, error) {
	var result *core.IndexSpec
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndexKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalIndexSpec(val)
			return err
		})
	}, false)
	return result, err
}

// ListIndexes returns all registered index definitions in name order.
func (r *IndexRepository) ListIndexes(ctx context.Context) ([]*core.IndexSpec, error) {
	var specs []*core.IndexSpec
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		specs, err = readIndexSpecs(tx)
		return err
	}, false)
	return specs, err
}

// readIndexSpecs reads all registered index definitions within a
// transaction. Keys sort by name, so the result is in name order.
func readIndexSpecs(tx *badger.Txn) ([]*core.IndexSpec, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(indexPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var specs []*core.IndexSpec
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var spec *core.IndexSpec
		err := iter.Item().Value(func(val []byte) error {
			var err error
			spec, err = storage.UnmarshalIndexSpec(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// hasKind reports whether any registered definition has the given kind.
func hasKind(specs []*core.IndexSpec, kind core.IndexKind) bool {
	for _, spec := range specs {
		if spec.Kind == kind {
			return true
		}
	}
	return false
}

// vectorSpec returns the registered vector index definition, or nil.
func vectorSpec(specs []*core.IndexSpec) *core.IndexSpec {
	for _, spec := range specs {
		if spec.Kind == core.IndexKindVector {
			return spec
		}
	}
	return nil
}

// backfillIndex writes secondary index entries for records stored before
// the definition was registered. Vector definitions need no entries since
// similarity search scans record vectors directly.
func backfillIndex(tx *badger.Txn, spec *core.IndexSpec) error {
	if spec.Kind != core.IndexKindText && spec.Kind != core.IndexKindKeyword {
		return nil
	}

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

		switch spec.Kind {
		case core.IndexKindText:
			for _, token := range indexTokens(record) {
				if err := tx.Set(makeTokenKey(token, record.Id), nil); err != nil {
					return err
				}
			}
		case core.IndexKindKeyword:
			if record.Category != "" {
				if err := tx.Set(makeCategoryKey(record.Category, record.Id), nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
