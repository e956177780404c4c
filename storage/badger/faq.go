package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
)

// FAQRepository implements storage.FAQRepository for BadgerDB.
type FAQRepository struct {
	backend *Backend
}

var _ storage.FAQRepository = (*FAQRepository)(nil)

// NewFAQRepository creates a new FAQRepository.
func NewFAQRepository(backend *Backend) (*FAQRepository, error) {
	return &FAQRepository{
		backend: backend,
	}, nil
}

// Close releases resources. FAQRepository has no resources to release.
func (r *FAQRepository) Close() error {
	return nil
}

// PutFAQs inserts or replaces FAQ records keyed by question text.
func (r *FAQRepository) PutFAQs(ctx context.Context, records ...*core.FAQRecord) ([]*core.FAQRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			if err := core.ValidateFAQRecord(record); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
			}
			record.Id = core.IDFromContent(record.Question)
			key := makeFAQKey(record.Id)

			old, err := get(tx, key, storage.UnmarshalFAQRecord)
			if err != nil {
				return err
			}
			switch {
			case old != nil:
				record.InsertedAt = old.InsertedAt
			case record.InsertedAt.IsZero():
				record.InsertedAt = now
			}
			record.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalFAQRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetFAQ retrieves an FAQ by its exact question text.
func (r *FAQRepository) GetFAQ(ctx context.Context, question string) (*core.FAQRecord, error) {
	var result *core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = get(tx, makeFAQKey(core.IDFromContent(question)), storage.UnmarshalFAQRecord)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllFAQs returns every stored FAQ in key order.
func (r *FAQRepository) AllFAQs(ctx context.Context) ([]*core.FAQRecord, error) {
	var result []*core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, prefixOf(faqRecordPrefix), func(val []byte) error {
			record, err := storage.UnmarshalFAQRecord(val)
			if err != nil {
				return err
			}
			result = append(result, record)
			return nil
		})
	}, false)
	return result, err
}

// DeleteFAQs removes FAQs by ID.
func (r *FAQRepository) DeleteFAQs(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFAQKey(id)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return fmt.Errorf("%w: faq %d", storage.ErrNotFound, id)
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilarFAQs ranks stored FAQs against vector.
func (r *FAQRepository) FindSimilarFAQs(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.FAQHit, error) {
	hits, err := findSimilar(ctx, r.backend, prefixOf(faqRecordPrefix), storage.UnmarshalFAQRecord,
		func(f *core.FAQRecord) []float32 { return f.Vector }, vector, minSimilarity, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*core.FAQHit, len(hits))
	for i, h := range hits {
		out[i] = &core.FAQHit{Record: h.record, Score: h.score}
	}
	return out, nil
}
