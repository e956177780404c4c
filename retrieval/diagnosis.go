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


package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/wellwise/ai"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// anySimilarity admits every stored vector; ranking alone decides.
const anySimilarity float32 = -1

// Diagnoser ranks diseases for a set of symptoms by embedding similarity.
//
// Each input symptom is spell-corrected against the stored symptom names.
// The unit vectors of the valid symptoms are averaged, the closest stored
// symptoms are found, and each expands to its diseases.
type Diagnoser struct {
	repo      storage.SymptomRepository
	embedder  ai.Embedder
	threshold float64
	logger    *slog.Logger

	mu        sync.RWMutex
	corrector *Corrector
}

// NewDiagnoser creates a diagnoser and loads the known symptom names from repo.
func NewDiagnoser(ctx context.Context, repo storage.SymptomRepository, embedder ai.Embedder, opts ...Option) (*Diagnoser, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	cfg, err := newConfig("diagnoser", opts)
	if err != nil {
		return nil, err
	}

	d := &Diagnoser{
		repo:      repo,
		embedder:  embedder,
		threshold: cfg.spellThreshold,
		logger:    cfg.logger,
	}
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh reloads the known symptom names. Call it after reindexing.
func (d *Diagnoser) Refresh(ctx context.Context) error {
	records, err := d.repo.AllSymptoms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load symptoms: %w", err)
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		if len(r.Diseases) > 0 {
			names = append(names, r.Name)
		}
	}

	d.mu.Lock()
	d.corrector = NewCorrector(names, d.threshold)
	d.mu.Unlock()

	d.logger.Debug("symptom names loaded", "count", len(names))
	return nil
}

// Known returns the spell-corrected names of the symptoms in text that the
// diagnoser recognizes, in input order without duplicates.
func (d *Diagnoser) Known(text string) []string {
	d.mu.RLock()
	corrector := d.corrector
	d.mu.RUnlock()

	var out []string
	seen := make(map[string]struct{})
	for _, part := range SplitSymptoms(text) {
		name, ok := corrector.Correct(part)
		if !ok {
			d.logger.Debug("dropping unrecognized symptom", "input", part)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Predict returns up to topK diseases for the comma or newline separated
// symptoms in text. Unrecognized symptoms are dropped; if none remain the
// result is empty.
func (d *Diagnoser) Predict(ctx context.Context, text string, topK int) ([]core.Diagnosis, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	names := d.Known(text)
	if len(names) == 0 {
		return []core.Diagnosis{}, nil
	}

	query, err := d.queryVector(ctx, names)
	if err != nil {
		return nil, err
	}

	matches, err := d.repo.FindSimilarSymptoms(ctx, query, anySimilarity, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search symptoms: %w", err)
	}

	title := cases.Title(language.English)
	var results []core.Diagnosis
	for _, m := range matches {
		for _, disease := range m.Record.Diseases {
			results = append(results, core.NewDiagnosis(title.String(disease), m.Record.Name, m.Score))
		}
	}
	return core.RankDiagnoses(results, topK), nil
}

// queryVector averages the unit vectors of names. Stored vectors are used
// where present; the rest are embedded now.
func (d *Diagnoser) queryVector(ctx context.Context, names []string) ([]float32, error) {
	records, err := d.repo.GetSymptoms(ctx, names...)
	if err != nil {
		return nil, fmt.Errorf("failed to load symptoms: %w", err)
	}
	stored := make(map[string][]float32, len(records))
	for _, r := range records {
		if len(r.Vector) > 0 {
			stored[r.Name] = r.Vector
		}
	}

	var missing []string
	for _, n := range names {
		if _, ok := stored[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for i, n := range missing {
			texts[i] = EmbeddingText(n)
		}
		vectors, err := d.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
		}
		if len(vectors) != len(missing) {
			return nil, fmt.Errorf("%w: got %d vectors for %d symptoms", ErrEmbeddingFailed, len(vectors), len(missing))
		}
		for i, n := range missing {
			stored[n] = vectors[i]
		}
	}

	vectors := make([][]float32, 0, len(names))
	for _, n := range names {
		vectors = append(vectors, core.Normalize(stored[n]))
	}
	return core.Normalize(core.Mean(vectors)), nil
}

// EmbeddingText is the text embedded for a symptom name: underscores
// become spaces so the encoder sees ordinary words.
func EmbeddingText(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
