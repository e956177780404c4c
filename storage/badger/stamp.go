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


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
)

// StampRepository implements storage.StampRepository for BadgerDB.
type StampRepository struct {
	backend *Backend
}

var _ storage.StampRepository = (*StampRepository)(nil)

// NewStampRepository creates a new StampRepository.
func NewStampRepository(backend *Backend) *StampRepository {
	return &StampRepository{
		backend: backend,
	}
}

// Close releases resources. StampRepository has no resources to release.
func (r *StampRepository) Close() error {
	return nil
}

// PutStamp persists the stamp for a corpus.
func (r *StampRepository) PutStamp(ctx context.Context, stamp *core.IndexStamp) error {
	if stamp != nil && stamp.UpdatedAt.IsZero() {
		stamp.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	if err := core.ValidateIndexStamp(stamp); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidRecord, err)
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeStampKey(stamp.Corpus), storage.MarshalIndexStamp(stamp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetStamp retrieves the stamp for a corpus.
func (r *StampRepository) GetStamp(ctx context.Context, corpus string) (*core.IndexStamp, error) {
	var stamp *core.IndexStamp
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		stamp, err = get(tx, makeStampKey(corpus), storage.UnmarshalIndexStamp)
		if err != nil {
			return err
		}
		if stamp == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return stamp, err
}

// DeleteStamp removes the stamp for a corpus.
func (r *StampRepository) DeleteStamp(ctx context.Context, corpus string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeStampKey(corpus)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
