package ingestion

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpus/ai/mock"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// testDocRepo implements storage.DocumentRepository over a map.
type testDocRepo struct {
	mu        sync.Mutex
	records   map[string]*core.Record
	existsErr error
	upsertErr error
}

func newTestDocRepo() *testDocRepo {
	return &testDocRepo{records: make(map[string]*core.Record)}
}

func (r *testDocRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.records[id]
	return ok, nil
}

func (r *testDocRepo) Get(ctx context.Context, id string) (*core.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return record, nil
}

func (r *testDocRepo) Upsert(ctx context.Context, record *core.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.records[record.Id] = record
	return nil
}

func (r *testDocRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *testDocRepo) All(ctx context.Context, fn func(record *core.Record) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if err := fn(record); err != nil {
			return err
		}
	}
	return nil
}

func (r *testDocRepo) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	return nil, nil
}

func (r *testDocRepo) FindMatching(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
	return nil, nil
}

func (r *testDocRepo) FindByTokens(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
	return nil, nil
}

func (r *testDocRepo) FindByCategory(ctx context.Context, category string, limit int) ([]*core.Record, error) {
	return nil, nil
}

func sampleRecords() []*core.Record {
	return []*core.Record{
		{Id: "movie-1", Title: "The Godfather", Content: "A crime dynasty in New York.", Category: "crime"},
		{Id: "movie-2", Title: "Alien", Content: "A space crew fights an alien.", Category: "scifi"},
		{Id: "movie-3", Title: "Casablanca", Content: "A wartime romance in Morocco.", Category: "romance"},
	}
}

func TestIngestNewRecords(t *testing.T) {
	repo := newTestDocRepo()
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.False(t, report.HasFailures())
	assert.Equal(t, 3, report.Total())

	stored, err := repo.Get(context.Background(), "movie-1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Vector)
	assert.NotZero(t, stored.ContentHash)
}

func TestIngestSkipsExisting(t *testing.T) {
	repo := newTestDocRepo()
	repo.records["movie-1"] = &core.Record{Id: "movie-1", Content: "already stored"}

	var embedCalls int64
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		atomic.AddInt64(&embedCalls, 1)
		return []float32{1, 0, 0}, nil
	}
	provider := mock.NewMockProviderWithEmbedder(embedder)

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Failed)

	// Skipped documents never reach the embedder
	assert.Equal(t, int64(2), atomic.LoadInt64(&embedCalls))
}

func TestIngestFailsOpenOnExistsError(t *testing.T) {
	repo := newTestDocRepo()
	repo.existsErr = errors.New("store unreachable")
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), sampleRecords())
	require.NoError(t, err)

	// The failed check is treated as "not stored" and ingestion proceeds
	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Failed)
}

func TestIngestPartialFailure(t *testing.T) {
	repo := newTestDocRepo()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "A space crew fights an alien." {
			return nil, errors.New("model overloaded")
		}
		return []float32{1, 0, 0}, nil
	}
	provider := mock.NewMockProviderWithEmbedder(embedder)

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Inserted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "movie-2", report.Failed[0].Id)

	var embedErr *EmbeddingError
	require.ErrorAs(t, report.Failed[0].Err, &embedErr)
	assert.Equal(t, "movie-2", embedErr.Id)
}

func TestIngestInvalidRecord(t *testing.T) {
	repo := newTestDocRepo()
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	records := []*core.Record{
		{Id: "movie-1", Content: "valid content"},
		{Id: "movie-2"}, // no content
	}
	report, err := pipeline.Ingest(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "movie-2", report.Failed[0].Id)
	assert.ErrorIs(t, report.Failed[0].Err, core.ErrInvalidRecord)
}

func TestIngestCancellation(t *testing.T) {
	repo := newTestDocRepo()
	provider := mock.NewMockProvider()

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := pipeline.Ingest(ctx, sampleRecords())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Inserted)
}

func TestIngestDuplicateIdsInBatch(t *testing.T) {
	repo := newTestDocRepo()

	var embedCalls int64
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		atomic.AddInt64(&embedCalls, 1)
		return []float32{1, 0, 0}, nil
	}
	provider := mock.NewMockProviderWithEmbedder(embedder)

	pipeline, err := NewPipeline(repo, provider, WithPoolSize(4))
	require.NoError(t, err)
	defer pipeline.Release()

	records := []*core.Record{
		{Id: "movie-1", Content: "same document"},
		{Id: "movie-1", Content: "same document"},
	}
	report, err := pipeline.Ingest(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, int64(1), atomic.LoadInt64(&embedCalls))
}

func TestNewPipelineValidation(t *testing.T) {
	provider := mock.NewMockProvider()

	_, err := NewPipeline(nil, provider)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewPipeline(newTestDocRepo(), nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}
