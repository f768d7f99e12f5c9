package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpus/ai/mock"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// testDocRepo implements storage.DocumentRepository over a map.
type testDocRepo struct {
	records map[string]*core.Record
	upserts int
}

func newTestDocRepo(records ...*core.Record) *testDocRepo {
	repo := &testDocRepo{records: make(map[string]*core.Record)}
	for _, record := range records {
		repo.records[record.Id] = record
	}
	return repo
}

func (r *testDocRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.records[id]
	return ok, nil
}

func (r *testDocRepo) Get(ctx context.Context, id string) (*core.Record, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return record, nil
}

func (r *testDocRepo) Upsert(ctx context.Context, record *core.Record) error {
	r.upserts++
	r.records[record.Id] = record
	return nil
}

func (r *testDocRepo) Count(ctx context.Context) (int, error) {
	return len(r.records), nil
}

func (r *testDocRepo) All(ctx context.Context, fn func(record *core.Record) error) error {
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r.records[id]); err != nil {
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

func testRecords(n int) []*core.Record {
	records := make([]*core.Record, n)
	for i := range records {
		records[i] = &core.Record{
			Id:      fmt.Sprintf("movie-%03d", i),
			Content: fmt.Sprintf("synopsis for movie %d", i),
			Vector:  []float32{1, 0, 0},
		}
	}
	return records
}

func TestReembedderRun(t *testing.T) {
	repo := newTestDocRepo(testRecords(7)...)
	embedder := mock.NewMockEmbedder()

	var out bytes.Buffer
	config := &Config{BatchSize: 3, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	reembedder := NewReembedder(repo, embedder, config, &out)

	require.NoError(t, reembedder.Run(context.Background()))

	// 3 + 3 + 1 records, one upsert per record
	assert.Equal(t, 7, repo.upserts)
	// EmbedTexts called once per batch
	assert.Equal(t, 3, embedder.CallCount())

	for _, record := range repo.records {
		assert.Len(t, record.Vector, 384, "record %s should carry the new embedding", record.Id)
	}

	assert.Contains(t, out.String(), "Reembedding complete")
}

func TestReembedderEmptyStore(t *testing.T) {
	repo := newTestDocRepo()

	var out bytes.Buffer
	reembedder := NewReembedder(repo, mock.NewMockEmbedder(), nil, &out)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, out.String(), "No records found")
	assert.Zero(t, repo.upserts)
}

func TestReembedderEmbedderFailure(t *testing.T) {
	repo := newTestDocRepo(testRecords(2)...)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model gone")
	}

	var out bytes.Buffer
	config := &Config{BatchSize: 10, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	reembedder := NewReembedder(repo, embedder, config, &out)

	err := reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, repo.upserts)
	// Retried before giving up
	assert.Equal(t, 2, embedder.CallCount())
}

func TestRecordIteratorBatches(t *testing.T) {
	repo := newTestDocRepo(testRecords(5)...)
	iterator := NewRecordIterator(repo, 2)

	var sizes []int
	err := iterator.ForEach(context.Background(), func(batch []*core.Record) error {
		sizes = append(sizes, len(batch))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestRecordIteratorStopsOnError(t *testing.T) {
	repo := newTestDocRepo(testRecords(5)...)
	iterator := NewRecordIterator(repo, 2)

	boom := errors.New("boom")
	calls := 0
	err := iterator.ForEach(context.Background(), func(batch []*core.Record) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRecordIteratorEmpty(t *testing.T) {
	iterator := NewRecordIterator(newTestDocRepo(), 2)

	calls := 0
	err := iterator.ForEach(context.Background(), func(batch []*core.Record) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls)
}
