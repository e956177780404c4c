package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/symptom"
)

// File names inside a data directory.
const (
	SymptomDiseaseFile = "symptom_disease.csv"
	SeverityFile       = "symptom_severity.csv"
	FAQFile            = "faq.csv"
	FollowupFile       = "followup_questions.json"
	SynonymsFile       = "synonyms.yaml"
	VocabularyFile     = "vocabulary.txt"
)

// Bundle is everything loaded from one data directory.
type Bundle struct {
	Symptoms   []*core.SymptomRecord
	Severities map[string]core.SeverityLevel
	FAQs       []*core.FAQRecord

	// Optional files. Nil when the file is absent.
	Followups  map[string][]string
	Synonyms   symptom.SynonymMap
	Vocabulary []string
}

// Terms returns the extraction vocabulary: the vocabulary file when one was
// given, otherwise every symptom of the disease table in first-seen order.
func (b *Bundle) Terms() []string {
	if b.Vocabulary != nil {
		return append([]string(nil), b.Vocabulary...)
	}
	terms := make([]string, len(b.Symptoms))
	for i, s := range b.Symptoms {
		terms[i] = s.Name
	}
	return terms
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger.With("component", "dataset")
	}
}

// LoadDir loads the data directory at dir.
func LoadDir(dir string, opts ...Option) (*Bundle, error) {
	return Load(os.DirFS(dir), opts...)
}

// Load reads a data directory from fsys. The disease, severity and FAQ
// files are required; the others are optional.
func Load(fsys fs.FS, opts ...Option) (*Bundle, error) {
	l := &loader{logger: slog.Default().With("component", "dataset")}
	for _, opt := range opts {
		opt(l)
	}

	b := &Bundle{}
	var err error

	if b.Symptoms, err = readRequired(fsys, SymptomDiseaseFile, LoadSymptomDiseases); err != nil {
		return nil, err
	}
	if b.Severities, err = readRequired(fsys, SeverityFile, LoadSeverities); err != nil {
		return nil, err
	}
	if b.FAQs, err = readRequired(fsys, FAQFile, LoadFAQs); err != nil {
		return nil, err
	}
	if b.Followups, err = readOptional(fsys, FollowupFile, LoadFollowups); err != nil {
		return nil, err
	}
	if b.Synonyms, err = readOptional(fsys, SynonymsFile, LoadSynonyms); err != nil {
		return nil, err
	}
	if b.Vocabulary, err = readOptional(fsys, VocabularyFile, LoadVocabulary); err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"symptoms", len(b.Symptoms),
		"severities", len(b.Severities),
		"faqs", len(b.FAQs),
		"followups", len(b.Followups),
		"synonyms", len(b.Synonyms))
	return b, nil
}

func readRequired[T any](fsys fs.FS, name string, parse func(io.Reader) (T, error)) (T, error) {
	v, found, err := read(fsys, name, parse)
	if err == nil && !found {
		err = fmt.Errorf("%w: %s", ErrMissingFile, name)
	}
	return v, err
}

func readOptional[T any](fsys fs.FS, name string, parse func(io.Reader) (T, error)) (T, error) {
	v, _, err := read(fsys, name, parse)
	return v, err
}

func read[T any](fsys fs.FS, name string, parse func(io.Reader) (T, error)) (v T, found bool, err error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	v, err = parse(f)
	return v, true, err
}
