package symptom

import (
	"log/slog"
	"strings"
)

// DefaultThreshold is the minimum Ratio score for a token to match a term.
const DefaultThreshold = 80.0

// Extractor finds vocabulary terms mentioned in free text.
type Extractor struct {
	vocab      *Vocabulary
	normalizer *Normalizer
	threshold  float64
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithThreshold sets the minimum fuzzy score (0-100] for a match.
// Default is DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(e *Extractor) error {
		if threshold <= 0 || threshold > 100 {
			return ErrInvalidThreshold
		}
		e.threshold = threshold
		return nil
	}
}

// WithNormalizer sets the normalizer applied before clause splitting.
// Default uses DefaultSynonyms.
func WithNormalizer(n *Normalizer) Option {
	return func(e *Extractor) error {
		if n == nil {
			return ErrNilNormalizer
		}
		e.normalizer = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "symptom-extractor")
		return nil
	}
}

// NewExtractor creates an extractor over vocab.
func NewExtractor(vocab *Vocabulary, opts ...Option) (*Extractor, error) {
	if vocab == nil {
		return nil, ErrNilVocabulary
	}

	e := &Extractor{
		vocab:      vocab,
		normalizer: NewNormalizer(DefaultSynonyms()),
		threshold:  DefaultThreshold,
		logger:     slog.Default().With("component", "symptom-extractor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Threshold returns the configured match threshold.
func (e *Extractor) Threshold() float64 {
	return e.threshold
}

// Vocabulary returns the vocabulary the extractor matches against.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract returns the canonical terms mentioned in text. Single-word matches
// come first, then phrase matches, each in first-seen order and without
// duplicates. Words that are part of a matched phrase are not reported on
// their own.
func (e *Extractor) Extract(text string) []string {
	return e.ExtractClauses(e.normalizer.Clauses(text))
}

// ExtractClauses runs negation filtering and matching over clauses that were
// already normalized and split.
func (e *Extractor) ExtractClauses(clauses []string) []string {
	words := e.vocab.words
	phrases := e.vocab.phrases
	if len(words) == 0 && len(phrases) == 0 {
		return []string{}
	}

	var matchedWords, matchedPhrases []string
	for _, clause := range clauses {
		if IsNegated(clause) {
			e.logger.Debug("skipping negated clause", "clause", clause)
			continue
		}
		tokens := Tokenize(clause)
		if len(tokens) == 0 {
			continue
		}
		matchedWords = append(matchedWords, e.matchWords(tokens, words)...)
		matchedPhrases = append(matchedPhrases, e.matchPhrases(tokens, phrases)...)
	}

	parts := make(map[string]struct{})
	for _, phrase := range matchedPhrases {
		for _, part := range strings.Split(phrase, PhraseSeparator) {
			parts[part] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(matchedWords)+len(matchedPhrases))
	result := make([]string, 0, len(matchedWords)+len(matchedPhrases))
	for _, w := range matchedWords {
		if _, isPart := parts[w]; isPart {
			continue
		}
		if _, dup := seen[w]; !dup {
			seen[w] = struct{}{}
			result = append(result, w)
		}
	}
	for _, p := range matchedPhrases {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}

	if len(result) > 0 {
		e.logger.Debug("extracted symptoms", "symptoms", result)
	}
	return result
}

// matchWords returns, for every token, its best single-word term when the
// score reaches the threshold.
func (e *Extractor) matchWords(tokens, words []string) []string {
	if len(words) == 0 {
		return nil
	}
	var matches []string
	for _, tok := range tokens {
		if m, ok := BestMatch(tok, words, Ratio, e.threshold); ok {
			matches = append(matches, m.Term)
		}
	}
	return matches
}

// matchPhrases returns every phrase whose parts each match some token.
// Parts may share a token and need not be adjacent or ordered.
func (e *Extractor) matchPhrases(tokens, phrases []string) []string {
	var matches []string
	for _, phrase := range phrases {
		matched := false
		for _, part := range strings.Split(phrase, PhraseSeparator) {
			if part == "" {
				continue
			}
			if _, ok := BestMatch(part, tokens, Ratio, e.threshold); !ok {
				matched = false
				break
			}
			matched = true
		}
		if matched {
			matches = append(matches, phrase)
		}
	}
	return matches
}
