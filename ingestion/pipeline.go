package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpus/ai"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/storage"
)

// Pipeline orchestrates the ingestion of document records.
// It embeds new documents and writes them to storage, skipping documents
// that are already stored.
type Pipeline struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	idLocks   keyedLocks
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(documents storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		embedder:  provider.Embedder(),
		pool:      pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest processes a batch of document records and returns a Report of
// what happened to each.
//
// Documents already stored are skipped without an embedding call. A
// document that fails validation, embedding or storage is recorded in
// Report.Failed and the batch continues. The only error this method
// returns is the context error; the partial Report is returned with it.
func (p *Pipeline) Ingest(ctx context.Context, records []*core.Record) (*Report, error) {
	report := &Report{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return report, err
		}

		record := record
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			p.ingestOne(ctx, record, report, &mu)
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			report.Failed = append(report.Failed, Failure{Id: recordId(record), Err: err})
			mu.Unlock()
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	p.logger.Info("ingestion batch complete",
		"inserted", report.Inserted, "skipped", report.Skipped, "failed", len(report.Failed))
	return report, nil
}

// ingestOne processes a single record and updates the shared report.
func (p *Pipeline) ingestOne(ctx context.Context, record *core.Record, report *Report, mu *sync.Mutex) {
	if err := ctx.Err(); err != nil {
		return
	}

	if err := core.ValidateRecord(record); err != nil {
		p.logger.Warn("invalid document", "id", recordId(record), "err", err)
		mu.Lock()
		report.Failed = append(report.Failed, Failure{Id: recordId(record), Err: err})
		mu.Unlock()
		return
	}

	// Serialize work per document id so a batch containing duplicates
	// embeds each id at most once.
	unlock := p.idLocks.lock(record.Id)
	defer unlock()

	exists, err := p.documents.Exists(ctx, record.Id)
	if err != nil {
		// Fail open: a duplicate write is cheaper than a dropped document.
		p.logger.Warn("existence check failed, ingesting anyway", "id", record.Id, "err", err)
		exists = false
	}
	if exists {
		p.logger.Debug("document already stored", "id", record.Id)
		mu.Lock()
		report.Skipped++
		mu.Unlock()
		return
	}

	vector, err := p.embedder.EmbedText(ctx, record.Content)
	if err != nil {
		p.logger.Error("embedding failed", "id", record.Id, "err", err)
		mu.Lock()
		report.Failed = append(report.Failed, Failure{Id: record.Id, Err: &EmbeddingError{Id: record.Id, Err: err}})
		mu.Unlock()
		return
	}
	record.Vector = core.NormalizeVector(vector)
	record.ContentHash = core.FingerprintContent(record.Content)

	if err := p.documents.Upsert(ctx, record); err != nil {
		p.logger.Error("storage write failed", "id", record.Id, "err", err)
		mu.Lock()
		report.Failed = append(report.Failed, Failure{Id: record.Id, Err: err})
		mu.Unlock()
		return
	}

	mu.Lock()
	report.Inserted++
	mu.Unlock()
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func recordId(record *core.Record) string {
	if record == nil {
		return ""
	}
	return record.Id
}

// keyedLocks provides a mutex per document id.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
