package search

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpus/ai/mock"
	"github.com/poiesic/corpus/core"
)

// fakeDocRepo is a function-field test double for storage.DocumentRepository.
type fakeDocRepo struct {
	findSimilarFunc  func(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)
	findMatchingFunc func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error)
	findByTokensFunc func(ctx context.Context, tokens []string, limit int) ([]*core.Record, error)
}

func (f *fakeDocRepo) Exists(ctx context.Context, id string) (bool, error) { return false, nil }

func (f *fakeDocRepo) Get(ctx context.Context, id string) (*core.Record, error) { return nil, nil }

func (f *fakeDocRepo) Upsert(ctx context.Context, record *core.Record) error { return nil }

func (f *fakeDocRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeDocRepo) All(ctx context.Context, fn func(record *core.Record) error) error {
	return nil
}

func (f *fakeDocRepo) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	if f.findSimilarFunc != nil {
		return f.findSimilarFunc(ctx, vector, minSimilarity, limit)
	}
	return nil, nil
}

func (f *fakeDocRepo) FindMatching(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
	if f.findMatchingFunc != nil {
		return f.findMatchingFunc(ctx, pattern, limit)
	}
	return nil, nil
}

func (f *fakeDocRepo) FindByTokens(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
	if f.findByTokensFunc != nil {
		return f.findByTokensFunc(ctx, tokens, limit)
	}
	return nil, nil
}

func (f *fakeDocRepo) FindByCategory(ctx context.Context, category string, limit int) ([]*core.Record, error) {
	return nil, nil
}

// recordingMonitor records which strategies ran and failed.
type recordingMonitor struct {
	started  []core.Strategy
	failed   []core.Strategy
	answered core.Strategy
	finished bool
}

func (m *recordingMonitor) Start(_ string)                  {}
func (m *recordingMonitor) StrategyStart(s core.Strategy)   { m.started = append(m.started, s) }
func (m *recordingMonitor) StrategyError(s core.Strategy, _ error) {
	m.failed = append(m.failed, s)
}
func (m *recordingMonitor) StrategyResults(s core.Strategy, results []*core.SearchResult) {
	if len(results) > 0 {
		m.answered = s
	}
}
func (m *recordingMonitor) Finish(_ []*core.SearchResult) { m.finished = true }

func record(id string) *core.Record {
	return &core.Record{Id: id, Content: "content for " + id}
}

func TestSemanticStrategyWins(t *testing.T) {
	repo := &fakeDocRepo{
		findSimilarFunc: func(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
			return []*core.SimilarityMatch{
				{Record: record("b"), Score: 0.95},
				{Record: record("a"), Score: 0.9},
				{Record: record("c"), Score: 0.2},
			}, nil
		},
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			t.Fatal("pattern strategy should not run when semantic answers")
			return nil, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProvider())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := engine.SearchWithMonitor(context.Background(), "crime family", 10, monitor)
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = result.Record.Id
		assert.Equal(t, core.StrategySemantic, result.Strategy)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)

	assert.Equal(t, []core.Strategy{core.StrategySemantic}, monitor.started)
	assert.Equal(t, core.StrategySemantic, monitor.answered)
	assert.True(t, monitor.finished)
}

func TestFallthroughToPattern(t *testing.T) {
	repo := &fakeDocRepo{
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			assert.True(t, pattern.MatchString("A CRIME dynasty"))
			return []*core.Record{record("a")}, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProvider())
	require.NoError(t, err)

	results, err := engine.Search(context.Background(), "crime", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.StrategyPattern, results[0].Strategy)
}

func TestFallthroughToKeywordOr(t *testing.T) {
	repo := &fakeDocRepo{
		findByTokensFunc: func(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
			assert.Equal(t, []string{"crime", "dynasty"}, tokens)
			return []*core.Record{record("a"), record("b")}, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProvider())
	require.NoError(t, err)

	results, err := engine.Search(context.Background(), "Crime Dynasty!", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, core.StrategyKeywordOr, result.Strategy)
	}
}

func TestStrategyErrorFallsThrough(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	repo := &fakeDocRepo{
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			return []*core.Record{record("a")}, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := engine.SearchWithMonitor(context.Background(), "crime", 10, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.StrategyPattern, results[0].Strategy)
	assert.Equal(t, []core.Strategy{core.StrategySemantic}, monitor.failed)
}

func TestAllStrategiesFail(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	storeDown := errors.New("store unreachable")
	repo := &fakeDocRepo{
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			return nil, storeDown
		},
		findByTokensFunc: func(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
			return nil, storeDown
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), "crime", 10)
	require.ErrorIs(t, err, ErrSearchFailed)

	var strategyErr *StrategyError
	require.ErrorAs(t, err, &strategyErr)
	assert.ErrorIs(t, err, storeDown)
}

func TestNoResultsIsNotAnError(t *testing.T) {
	engine, err := NewEngine(&fakeDocRepo{}, mock.NewMockProvider())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := engine.SearchWithMonitor(context.Background(), "nothing matches this", 10, monitor)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)

	// Every strategy got its chance
	want := []core.Strategy{core.StrategySemantic, core.StrategyPattern, core.StrategyKeywordOr}
	assert.Equal(t, want, monitor.started)
}

func TestLimitForwardedToStrategies(t *testing.T) {
	var similarLimit, matchingLimit, tokenLimit int
	repo := &fakeDocRepo{
		findSimilarFunc: func(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
			similarLimit = limit
			return nil, nil
		},
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			matchingLimit = limit
			return nil, nil
		},
		findByTokensFunc: func(ctx context.Context, tokens []string, limit int) ([]*core.Record, error) {
			tokenLimit = limit
			return nil, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), "crime", 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 7, 7}, []int{similarLimit, matchingLimit, tokenLimit})
}

func TestInvalidQueries(t *testing.T) {
	engine, err := NewEngine(&fakeDocRepo{}, mock.NewMockProvider())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = engine.Search(context.Background(), "crime", 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestInvalidRegexFallsBackToLiteral(t *testing.T) {
	var seen *regexp.Regexp
	repo := &fakeDocRepo{
		findMatchingFunc: func(ctx context.Context, pattern *regexp.Regexp, limit int) ([]*core.Record, error) {
			seen = pattern
			return []*core.Record{record("a")}, nil
		},
	}

	engine, err := NewEngine(repo, mock.NewMockProvider())
	require.NoError(t, err)

	// "c++" is not a valid regex; it must be matched literally
	results, err := engine.Search(context.Background(), "c++", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, seen)
	assert.True(t, seen.MatchString("learning C++ today"))
	assert.False(t, seen.MatchString("plain c only"))
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)

	_, err = NewEngine(&fakeDocRepo{}, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestStrategyOrderIsStable(t *testing.T) {
	engine, err := NewEngine(&fakeDocRepo{}, mock.NewMockProvider())
	require.NoError(t, err)

	kinds := make([]core.Strategy, len(engine.strategies))
	for i, s := range engine.strategies {
		kinds[i] = s.Kind()
	}
	assert.True(t, slices.Equal(kinds, []core.Strategy{
		core.StrategySemantic, core.StrategyPattern, core.StrategyKeywordOr,
	}))
}
