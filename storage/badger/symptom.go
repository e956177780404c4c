package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
)

// SymptomRepository implements storage.SymptomRepository for BadgerDB.
type SymptomRepository struct {
	backend *Backend
}

var _ storage.SymptomRepository = (*SymptomRepository)(nil)

// NewSymptomRepository creates a new SymptomRepository.
func NewSymptomRepository(backend *Backend) (*SymptomRepository, error) {
	return &SymptomRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SymptomRepository has no resources to release.
func (r *SymptomRepository) Close() error {
	return nil
}

// PutSymptoms inserts or replaces symptom records.
func (r *SymptomRepository) PutSymptoms(ctx context.Context, records ...*core.SymptomRecord) ([]*core.SymptomRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			if err := core.ValidateSymptomRecord(record); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
			}
			record.Id = core.IDFromContent(record.Name)
			key := makeSymptomKey(record.Id)

			old, err := get(tx, key, storage.UnmarshalSymptomRecord)
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

			if err := tx.Set(key, storage.MarshalSymptomRecord(record)); err != nil {
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

// GetSymptom retrieves a symptom by canonical name.
func (r *SymptomRepository) GetSymptom(ctx context.Context, name string) (*core.SymptomRecord, error) {
	var result *core.SymptomRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = get(tx, makeSymptomKey(core.IDFromContent(name)), storage.UnmarshalSymptomRecord)
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

// GetSymptoms retrieves symptoms by canonical name, skipping missing ones.
func (r *SymptomRepository) GetSymptoms(ctx context.Context, names ...string) ([]*core.SymptomRecord, error) {
	var result []*core.SymptomRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, name := range names {
			record, err := get(tx, makeSymptomKey(core.IDFromContent(name)), storage.UnmarshalSymptomRecord)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllSymptoms returns every stored symptom in key order.
func (r *SymptomRepository) AllSymptoms(ctx context.Context) ([]*core.SymptomRecord, error) {
	var result []*core.SymptomRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(ctx, tx, prefixOf(symptomRecordPrefix), func(val []byte) error {
			record, err := storage.UnmarshalSymptomRecord(val)
			if err != nil {
				return err
			}
			result = append(result, record)
			return nil
		})
	}, false)
	return result, err
}

// DeleteSymptoms removes symptoms by ID.
func (r *SymptomRepository) DeleteSymptoms(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSymptomKey(id)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return fmt.Errorf("%w: symptom %d", storage.ErrNotFound, id)
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

// FindSimilarSymptoms ranks stored symptoms against vector.
func (r *SymptomRepository) FindSimilarSymptoms(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SymptomMatch, error) {
	hits, err := findSimilar(ctx, r.backend, prefixOf(symptomRecordPrefix), storage.UnmarshalSymptomRecord,
		func(s *core.SymptomRecord) []float32 { return s.Vector }, vector, minSimilarity, limit)
	if err != nil {
		return nil, err
	}
	matches := make([]*core.SymptomMatch, len(hits))
	for i, h := range hits {
		matches[i] = &core.SymptomMatch{Record: h.record, Score: h.score}
	}
	return matches, nil
}
