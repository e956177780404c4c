// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/wellwise/ai"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/retrieval"
	"github.com/poiesic/wellwise/storage"
)

// Corpus names used for index stamps.
const (
	CorpusSymptoms = "symptoms"
	CorpusFAQs     = "faqs"
)

// Config holds configuration for an index build.
type Config struct {
	// BatchSize is the number of texts sent to the embedder at once.
	BatchSize int

	// Workers is the number of batches embedded concurrently.
	Workers int

	// MaxRetries is the number of attempts per batch.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration

	// ReportInterval is how often to report progress, in records.
	ReportInterval int

	// Force rebuilds every vector even when the stamps match.
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      64,
		Workers:        max(1, runtime.NumCPU()/2),
		MaxRetries:     3,
		RetryDelay:     time.Second,
		ReportInterval: 100,
	}
}

// Validate checks that every field is usable.
func (c *Config) Validate() error {
	switch {
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxRetries < 1:
		return fmt.Errorf("%w: max retries must be positive, got %d", ErrInvalidConfig, c.MaxRetries)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay cannot be negative, got %v", ErrInvalidConfig, c.RetryDelay)
	case c.ReportInterval < 1:
		return fmt.Errorf("%w: report interval must be positive, got %d", ErrInvalidConfig, c.ReportInterval)
	}
	return nil
}

// CorpusResult describes what a build did to one corpus.
type CorpusResult struct {
	Corpus string
	Total  int

	// Embedded records got fresh vectors; Reused kept their stored ones.
	Embedded int
	Reused   int
	Deleted  int

	// Current is true when the stamp matched and nothing was written.
	Current bool
}

// Result describes a whole build.
type Result struct {
	Symptoms CorpusResult
	FAQs     CorpusResult
	Elapsed  time.Duration
}

// Indexer builds the embedding cache.
type Indexer struct {
	symptoms storage.SymptomRepository
	faqs     storage.FAQRepository
	stamps   storage.StampRepository
	provider ai.AIProvider
	config   *Config
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(ix *Indexer) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		ix.config = config
		return nil
	}
}

// WithProgress sets where progress lines are written.
// Default discards them.
func WithProgress(w io.Writer) Option {
	return func(ix *Indexer) error {
		if w == nil {
			w = io.Discard
		}
		ix.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger.With("component", "indexer")
		return nil
	}
}

// NewIndexer creates an indexer. Call Release when done with it.
func NewIndexer(
	symptoms storage.SymptomRepository,
	faqs storage.FAQRepository,
	stamps storage.StampRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Indexer, error) {
	switch {
	case symptoms == nil:
		return nil, fmt.Errorf("%w: symptoms", ErrRepositoryRequired)
	case faqs == nil:
		return nil, fmt.Errorf("%w: faqs", ErrRepositoryRequired)
	case stamps == nil:
		return nil, fmt.Errorf("%w: stamps", ErrRepositoryRequired)
	case provider == nil:
		return nil, ErrAIProviderRequired
	}

	ix := &Indexer{
		symptoms: symptoms,
		faqs:     faqs,
		stamps:   stamps,
		provider: provider,
		config:   DefaultConfig(),
		progress: io.Discard,
		logger:   slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(ix.config.Workers)
	if err != nil {
		return nil, err
	}
	ix.pool = pool
	return ix, nil
}

// Release stops the worker pool. The indexer must not be used afterwards.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}

// Run brings both corpora up to date. Input records only need their
// content fields; they are copied, not modified.
func (ix *Indexer) Run(ctx context.Context, symptoms []*core.SymptomRecord, faqs []*core.FAQRecord) (*Result, error) {
	start := time.Now()
	result := &Result{}

	var err error
	result.Symptoms, err = indexCorpus(ctx, ix, ix.symptomCorpus(), symptoms)
	if err != nil {
		return nil, err
	}
	result.FAQs, err = indexCorpus(ctx, ix, ix.faqCorpus(), faqs)
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	ix.logger.Info("index build complete",
		"symptomsEmbedded", result.Symptoms.Embedded,
		"faqsEmbedded", result.FAQs.Embedded,
		"elapsed", result.Elapsed)
	return result, nil
}

// corpus adapts one record type to the generic build.
type corpus[R any] struct {
	name      string
	clone     func(R) R
	key       func(R) string
	text      func(R) string
	id        func(R) core.ID
	vector    func(R) []float32
	setVector func(R, []float32)
	digest    func([]R) string
	all       func(context.Context) ([]R, error)
	put       func(context.Context, ...R) error
	delete    func(context.Context, ...core.ID) error
}

func (ix *Indexer) symptomCorpus() corpus[*core.SymptomRecord] {
	return corpus[*core.SymptomRecord]{
		name: CorpusSymptoms,
		clone: func(r *core.SymptomRecord) *core.SymptomRecord {
			return &core.SymptomRecord{Name: r.Name, Diseases: slices.Clone(r.Diseases)}
		},
		key:       func(r *core.SymptomRecord) string { return r.Name },
		text:      func(r *core.SymptomRecord) string { return retrieval.EmbeddingText(r.Name) },
		id:        func(r *core.SymptomRecord) core.ID { return r.Id },
		vector:    func(r *core.SymptomRecord) []float32 { return r.Vector },
		setVector: func(r *core.SymptomRecord, v []float32) { r.Vector = v },
		digest:    SymptomDigest,
		all:       ix.symptoms.AllSymptoms,
		put: func(ctx context.Context, records ...*core.SymptomRecord) error {
			_, err := ix.symptoms.PutSymptoms(ctx, records...)
			return err
		},
		delete: ix.symptoms.DeleteSymptoms,
	}
}

func (ix *Indexer) faqCorpus() corpus[*core.FAQRecord] {
	return corpus[*core.FAQRecord]{
		name: CorpusFAQs,
		clone: func(r *core.FAQRecord) *core.FAQRecord {
			return &core.FAQRecord{Question: r.Question, Answer: r.Answer}
		},
		key:       func(r *core.FAQRecord) string { return r.Question },
		text:      func(r *core.FAQRecord) string { return r.Question },
		id:        func(r *core.FAQRecord) core.ID { return r.Id },
		vector:    func(r *core.FAQRecord) []float32 { return r.Vector },
		setVector: func(r *core.FAQRecord, v []float32) { r.Vector = v },
		digest:    FAQDigest,
		all:       ix.faqs.AllFAQs,
		put: func(ctx context.Context, records ...*core.FAQRecord) error {
			_, err := ix.faqs.PutFAQs(ctx, records...)
			return err
		},
		delete: ix.faqs.DeleteFAQs,
	}
}

func indexCorpus[R any](ctx context.Context, ix *Indexer, c corpus[R], input []R) (CorpusResult, error) {
	res := CorpusResult{Corpus: c.name, Total: len(input)}
	logger := ix.logger.With("corpus", c.name)
	model := ix.provider.EmbeddingModel()

	records := make([]R, 0, len(input))
	seen := make(map[string]bool, len(input))
	for _, r := range input {
		k := c.key(r)
		if seen[k] {
			return res, fmt.Errorf("%w: %s %q", ErrDuplicateEntry, c.name, k)
		}
		seen[k] = true
		records = append(records, c.clone(r))
	}
	digest := c.digest(records)

	stamp, err := ix.stamps.GetStamp(ctx, c.name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return res, fmt.Errorf("failed to read %s stamp: %w", c.name, err)
	}
	if stamp != nil && !ix.config.Force && stamp.Model == model && stamp.Digest == digest {
		logger.Debug("corpus is current", "model", model, "count", stamp.Count)
		res.Current = true
		return res, nil
	}

	stored, err := c.all(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	reusable := stamp != nil && !ix.config.Force && stamp.Model == model
	existing := make(map[string]R, len(stored))
	var stale []core.ID
	for _, r := range stored {
		if seen[c.key(r)] {
			existing[c.key(r)] = r
		} else {
			stale = append(stale, c.id(r))
		}
	}

	var reused, fresh []R
	for _, r := range records {
		if old, ok := existing[c.key(r)]; ok && reusable && len(c.vector(old)) > 0 {
			c.setVector(r, c.vector(old))
			reused = append(reused, r)
			continue
		}
		fresh = append(fresh, r)
	}

	logger.Info("indexing corpus",
		"model", model, "total", len(records),
		"embed", len(fresh), "reuse", len(reused), "stale", len(stale))

	if len(stale) > 0 {
		if err := c.delete(ctx, stale...); err != nil {
			return res, fmt.Errorf("failed to delete stale %s: %w", c.name, err)
		}
	}
	if len(reused) > 0 {
		if err := c.put(ctx, reused...); err != nil {
			return res, fmt.Errorf("failed to store %s: %w", c.name, err)
		}
	}
	if err := embedAll(ctx, ix, c, fresh, logger); err != nil {
		return res, err
	}

	err = ix.stamps.PutStamp(ctx, &core.IndexStamp{
		Corpus: c.name,
		Model:  model,
		Digest: digest,
		Count:  len(records),
	})
	if err != nil {
		return res, fmt.Errorf("failed to write %s stamp: %w", c.name, err)
	}

	res.Embedded = len(fresh)
	res.Reused = len(reused)
	res.Deleted = len(stale)
	return res, nil
}

// embedAll embeds records in batches on the worker pool and stores each
// batch as it completes. The first failure cancels the remaining batches.
func embedAll[R any](ctx context.Context, ix *Indexer, c corpus[R], records []R, logger *slog.Logger) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	progress := NewProgress(ix.progress, "Embedding "+c.name, len(records), ix.config.ReportInterval)
	backoff := Backoff{Attempts: ix.config.MaxRetries, BaseDelay: ix.config.RetryDelay}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel(err)
		})
	}

	for batch := range slices.Chunk(records, ix.config.BatchSize) {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := ix.pool.Submit(func() {
			defer wg.Done()
			if err := embedBatch(ctx, ix, c, batch, backoff, logger); err != nil {
				fail(err)
				return
			}
			progress.Add(len(batch))
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit %s batch: %w", c.name, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if err := context.Cause(ctx); err != nil {
		return err
	}
	progress.Finish()
	return nil
}

func embedBatch[R any](ctx context.Context, ix *Indexer, c corpus[R], batch []R, backoff Backoff, logger *slog.Logger) error {
	texts := make([]string, len(batch))
	for i, r := range batch {
		texts[i] = c.text(r)
	}

	var vectors [][]float32
	err := backoff.Retry(ctx, logger, func(ctx context.Context) error {
		var err error
		vectors, err = ix.provider.Embedder().EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return Permanent(fmt.Errorf("%w: expected %d, got %d", ai.ErrEmbeddingCount, len(texts), len(vectors)))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to embed %s batch: %w", c.name, err)
	}

	for i, r := range batch {
		if len(vectors[i]) == 0 {
			return fmt.Errorf("%w: %s %q", ai.ErrEmptyEmbedding, c.name, c.key(r))
		}
		c.setVector(r, core.Normalize(vectors[i]))
	}
	if err := c.put(ctx, batch...); err != nil {
		return fmt.Errorf("failed to store %s batch: %w", c.name, err)
	}
	return nil
}
