package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record := &Record{
			Id:      "movie-1",
			Title:   "The Godfather",
			Content: "The aging patriarch of a crime dynasty transfers control to his son.",
		}
		require.NoError(t, ValidateRecord(record))
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateRecord(nil)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateRecord(&Record{Content: "some content"})
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("empty content", func(t *testing.T) {
		err := ValidateRecord(&Record{Id: "movie-1"})
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})
}

func TestValidateIndexSpec(t *testing.T) {
	t.Run("valid text index", func(t *testing.T) {
		spec := &IndexSpec{Name: "content_text", Field: "content", Kind: IndexKindText}
		require.NoError(t, ValidateIndexSpec(spec))
	})

	t.Run("valid vector index", func(t *testing.T) {
		spec := &IndexSpec{
			Name:       "content_vector",
			Field:      "content",
			Kind:       IndexKindVector,
			Dimensions: 1536,
			Metric:     MetricCosine,
		}
		require.NoError(t, ValidateIndexSpec(spec))
	})

	t.Run("nil spec", func(t *testing.T) {
		assert.ErrorIs(t, ValidateIndexSpec(nil), ErrInvalidIndexSpec)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateIndexSpec(&IndexSpec{Field: "content", Kind: IndexKindText})
		assert.ErrorIs(t, err, ErrEmptyIndexName)
	})

	t.Run("empty field", func(t *testing.T) {
		err := ValidateIndexSpec(&IndexSpec{Name: "idx", Kind: IndexKindText})
		assert.ErrorIs(t, err, ErrEmptyIndexField)
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := ValidateIndexSpec(&IndexSpec{Name: "idx", Field: "content", Kind: IndexKind(42)})
		assert.ErrorIs(t, err, ErrInvalidIndexKind)
	})

	t.Run("vector index without dimensions", func(t *testing.T) {
		err := ValidateIndexSpec(&IndexSpec{
			Name: "vec", Field: "content", Kind: IndexKindVector, Metric: MetricCosine,
		})
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("vector index without metric", func(t *testing.T) {
		err := ValidateIndexSpec(&IndexSpec{
			Name: "vec", Field: "content", Kind: IndexKindVector, Dimensions: 8,
		})
		assert.ErrorIs(t, err, ErrInvalidMetric)
	})
}
