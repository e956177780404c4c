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


// Package storage defines the persistence layer for wellwise's embedding
// cache.
//
// Symptom and FAQ embeddings are expensive to compute, so the index builder
// stores them once and the retrieval oracles scan them at query time. The
// repositories here describe that cache; storage/badger implements them on
// BadgerDB.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	symptoms, err := badger.NewSymptomRepository(backend)
//
// Tests use an in-memory database:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// # Encoding
//
// Records are encoded with mus-go varint and ord serializers behind a
// one-byte format version. See MarshalSymptomRecord and friends.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
