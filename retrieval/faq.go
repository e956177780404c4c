package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/wellwise/ai"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
)

// FAQIndex answers free-text questions from the stored FAQ corpus.
type FAQIndex struct {
	repo     storage.FAQRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewFAQIndex creates an FAQ index over repo.
func NewFAQIndex(repo storage.FAQRepository, embedder ai.Embedder, opts ...Option) (*FAQIndex, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	cfg, err := newConfig("faq", opts)
	if err != nil {
		return nil, err
	}
	return &FAQIndex{repo: repo, embedder: embedder, logger: cfg.logger}, nil
}

// BestMatch returns up to topK FAQ entries ranked by cosine similarity to
// query. A blank query yields no matches.
func (f *FAQIndex) BestMatch(ctx context.Context, query string, topK int) ([]core.FAQMatch, error) {
	if strings.TrimSpace(query) == "" {
		return []core.FAQMatch{}, nil
	}
	if topK <= 0 {
		topK = 1
	}

	vector, err := f.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	hits, err := f.repo.FindSimilarFAQs(ctx, core.Normalize(vector), anySimilarity, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search faqs: %w", err)
	}

	matches := make([]core.FAQMatch, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, core.FAQMatch{
			Question: h.Record.Question,
			Answer:   h.Record.Answer,
			Score:    h.Score,
		})
	}
	if len(matches) > 0 {
		f.logger.Debug("faq matched", "question", matches[0].Question, "score", matches[0].Score)
	}
	return matches, nil
}
