package storage

import (
	"context"

	"github.com/poiesic/wellwise/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close releases resources held by the repository.
	Close() error
}

// SymptomRepository stores known symptoms with their embeddings and
// associated diseases. Records are keyed by IDFromContent(Name).
type SymptomRepository interface {
	Repository

	// PutSymptoms inserts or replaces symptom records.
	// Sets Id from the name, keeps InsertedAt of an existing record and
	// stamps UpdatedAt. Returns the stored records.
	PutSymptoms(ctx context.Context, records ...*core.SymptomRecord) ([]*core.SymptomRecord, error)

	// GetSymptom retrieves a symptom by canonical name.
	// Returns ErrNotFound if the symptom doesn't exist.
	GetSymptom(ctx context.Context, name string) (*core.SymptomRecord, error)

	// GetSymptoms retrieves symptoms by canonical name.
	// Returns only the records that exist (no error for missing names).
	GetSymptoms(ctx context.Context, names ...string) ([]*core.SymptomRecord, error)

	// AllSymptoms returns every stored symptom.
	AllSymptoms(ctx context.Context) ([]*core.SymptomRecord, error)

	// DeleteSymptoms removes symptoms by ID.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteSymptoms(ctx context.Context, ids ...core.ID) error

	// FindSimilarSymptoms ranks symptoms by dot product with vector.
	// Returns matches with similarity >= minSimilarity, up to limit results,
	// highest first. Records without a vector are skipped.
	FindSimilarSymptoms(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SymptomMatch, error)
}

// FAQRepository stores question/answer pairs with question embeddings.
// Records are keyed by IDFromContent(Question).
type FAQRepository interface {
	Repository

	// PutFAQs inserts or replaces FAQ records.
	PutFAQs(ctx context.Context, records ...*core.FAQRecord) ([]*core.FAQRecord, error)

	// GetFAQ retrieves an FAQ by its exact question text.
	// Returns ErrNotFound if the record doesn't exist.
	GetFAQ(ctx context.Context, question string) (*core.FAQRecord, error)

	// AllFAQs returns every stored FAQ.
	AllFAQs(ctx context.Context) ([]*core.FAQRecord, error)

	// DeleteFAQs removes FAQs by ID.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteFAQs(ctx context.Context, ids ...core.ID) error

	// FindSimilarFAQs ranks FAQs by dot product with vector, highest first.
	FindSimilarFAQs(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.FAQHit, error)
}

// StampRepository tracks which embedding model and corpus digest built the
// vectors of each corpus.
type StampRepository interface {
	Repository

	// GetStamp returns the stamp for a corpus.
	// Returns ErrNotFound if the corpus was never indexed.
	GetStamp(ctx context.Context, corpus string) (*core.IndexStamp, error)

	// PutStamp stores a stamp, replacing any previous one for the corpus.
	PutStamp(ctx context.Context, stamp *core.IndexStamp) error

	// DeleteStamp removes a corpus stamp. Missing stamps are not an error.
	DeleteStamp(ctx context.Context, corpus string) error
}
