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


// Package wellwise wires the symptom checker together: data files,
// embedding cache, embedding provider, retrieval oracles, symptom extractor
// and dialogue controller.
package wellwise

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"

	"github.com/poiesic/wellwise/ai"
	"github.com/poiesic/wellwise/ai/openai"
	"github.com/poiesic/wellwise/data"
	"github.com/poiesic/wellwise/dataset"
	"github.com/poiesic/wellwise/dialogue"
	"github.com/poiesic/wellwise/index"
	"github.com/poiesic/wellwise/retrieval"
	"github.com/poiesic/wellwise/storage/badger"
	"github.com/poiesic/wellwise/symptom"
)

// Engine owns every long-lived component of the symptom checker. It is
// read-only after Open and safe to share between conversations.
type Engine struct {
	repos       *badger.Repositories
	provider    ai.AIProvider
	bundle      *dataset.Bundle
	indexConfig *index.Config
	progress    io.Writer
	lastIndex   *index.Result

	extractor *symptom.Extractor
	diagnoser *retrieval.Diagnoser
	severity  *retrieval.SeverityTable
	followups *retrieval.FollowupBank
	faq       *retrieval.FAQIndex

	base   *slog.Logger
	logger *slog.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	dbPath           string
	data             fs.FS
	aiConfig         *ai.Config
	provider         ai.AIProvider
	indexConfig      *index.Config
	progress         io.Writer
	extractThreshold float64
	spellThreshold   float64
	synonyms         symptom.SynonymMap
	logger           *slog.Logger
}

// WithDatabasePath stores the embedding cache at path.
// Default keeps it in memory, so every Open re-embeds the corpora.
func WithDatabasePath(path string) Option {
	return func(o *options) { o.dbPath = path }
}

// WithData reads the data files from fsys.
// Default is the embedded sample data.
func WithData(fsys fs.FS) Option {
	return func(o *options) { o.data = fsys }
}

// WithDataDir reads the data files from dir.
func WithDataDir(dir string) Option {
	return func(o *options) { o.data = os.DirFS(dir) }
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) { o.aiConfig = config }
}

// WithProvider uses provider instead of creating one from the AI config.
// The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) { o.provider = provider }
}

// WithIndexConfig sets the index build configuration.
// Default is index.DefaultConfig().
func WithIndexConfig(config *index.Config) Option {
	return func(o *options) { o.indexConfig = config }
}

// WithProgress sets where index progress lines are written.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithExtractThreshold sets the fuzzy ratio a word or phrase must reach to
// count as a symptom mention. Default is symptom.DefaultThreshold.
func WithExtractThreshold(threshold float64) Option {
	return func(o *options) { o.extractThreshold = threshold }
}

// WithSpellThreshold sets the token-sort ratio the oracles need to correct
// a symptom name. Default is retrieval.DefaultSpellThreshold.
func WithSpellThreshold(threshold float64) Option {
	return func(o *options) { o.spellThreshold = threshold }
}

// WithSynonyms adds surface forms on top of the built-in and data file
// synonyms. Entries here win on conflict.
func WithSynonyms(synonyms symptom.SynonymMap) Option {
	return func(o *options) { o.synonyms = synonyms }
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Open loads the data files, brings the embedding cache up to date and
// builds the oracles. Caller must call Close when done.
func Open(ctx context.Context, opts ...Option) (*Engine, error) {
	o := &options{
		data:             data.FS,
		aiConfig:         ai.DefaultConfig(),
		indexConfig:      index.DefaultConfig(),
		extractThreshold: symptom.DefaultThreshold,
		spellThreshold:   retrieval.DefaultSpellThreshold,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	bundle, err := dataset.Load(o.data, dataset.WithLogger(o.logger))
	if err != nil {
		if o.provider != nil {
			o.provider.Close()
		}
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	provider := o.provider
	if provider == nil {
		if provider, err = openai.NewProvider(o.aiConfig); err != nil {
			return nil, err
		}
	}

	var repos *badger.Repositories
	if o.dbPath == "" {
		repos, err = badger.NewMemoryRepositories()
	} else {
		repos, err = badger.OpenRepositories(o.dbPath)
	}
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	e := &Engine{
		repos:       repos,
		provider:    provider,
		bundle:      bundle,
		indexConfig: o.indexConfig,
		progress:    o.progress,
		base:        o.logger,
		logger:      o.logger.With("component", "engine"),
	}
	if err := e.build(ctx, o); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) build(ctx context.Context, o *options) error {
	var err error
	if e.lastIndex, err = e.runIndex(ctx, e.indexConfig); err != nil {
		return err
	}

	oracleOpts := []retrieval.Option{
		retrieval.WithLogger(o.logger),
		retrieval.WithSpellThreshold(o.spellThreshold),
	}
	embedder := e.provider.Embedder()
	if e.diagnoser, err = retrieval.NewDiagnoser(ctx, e.repos.Symptoms, embedder, oracleOpts...); err != nil {
		return err
	}
	if e.severity, err = retrieval.NewSeverityTable(e.bundle.Severities, oracleOpts...); err != nil {
		return err
	}
	if e.faq, err = retrieval.NewFAQIndex(e.repos.FAQs, embedder, oracleOpts...); err != nil {
		return err
	}
	followups := e.bundle.Followups
	if followups == nil {
		followups = retrieval.DefaultFollowups()
	}
	e.followups = retrieval.NewFollowupBank(followups)

	synonyms := symptom.DefaultSynonyms()
	maps.Copy(synonyms, e.bundle.Synonyms)
	maps.Copy(synonyms, o.synonyms)
	e.extractor, err = symptom.NewExtractor(
		symptom.NewVocabulary(e.bundle.Terms()),
		symptom.WithThreshold(o.extractThreshold),
		symptom.WithNormalizer(symptom.NewNormalizer(synonyms)),
		symptom.WithLogger(o.logger),
	)
	return err
}

func (e *Engine) runIndex(ctx context.Context, config *index.Config) (*index.Result, error) {
	ix, err := index.NewIndexer(e.repos.Symptoms, e.repos.FAQs, e.repos.Stamps, e.provider,
		index.WithConfig(config),
		index.WithProgress(e.progress),
		index.WithLogger(e.base))
	if err != nil {
		return nil, err
	}
	defer ix.Release()

	result, err := ix.Run(ctx, e.bundle.Symptoms, e.bundle.FAQs)
	if err != nil {
		return nil, fmt.Errorf("failed to index embeddings: %w", err)
	}
	return result, nil
}

// Reindex rebuilds the embedding cache, re-embedding everything when force
// is set, and reloads the diagnosis oracle.
func (e *Engine) Reindex(ctx context.Context, force bool) (*index.Result, error) {
	config := *e.indexConfig
	config.Force = force
	result, err := e.runIndex(ctx, &config)
	if err != nil {
		return nil, err
	}
	if err := e.diagnoser.Refresh(ctx); err != nil {
		return nil, err
	}
	e.lastIndex = result
	return result, nil
}

// LastIndex returns the result of the most recent index build.
func (e *Engine) LastIndex() *index.Result {
	return e.lastIndex
}

// Oracles returns the retrieval oracles for a dialogue controller.
func (e *Engine) Oracles() dialogue.Oracles {
	return dialogue.Oracles{
		Diagnosis: e.diagnoser,
		Severity:  e.severity,
		Followup:  e.followups,
		FAQ:       e.faq,
	}
}

// Extractor returns the symptom extractor.
func (e *Engine) Extractor() *symptom.Extractor {
	return e.extractor
}

// NewController creates a dialogue controller over the engine's oracles.
func (e *Engine) NewController(opts ...dialogue.Option) (*dialogue.Controller, error) {
	opts = append([]dialogue.Option{dialogue.WithLogger(e.base)}, opts...)
	return dialogue.NewController(e.extractor, e.Oracles(), opts...)
}

// EmbeddingModel returns the name of the embedding model in use.
func (e *Engine) EmbeddingModel() string {
	return e.provider.EmbeddingModel()
}

// Close releases the provider and the embedding cache.
func (e *Engine) Close() error {
	var errs []error
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if err := e.repos.Close(); err != nil {
		e.logger.Error("error closing embedding cache", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
