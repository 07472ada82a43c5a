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


// Package storage provides the storage abstraction layer for sift's query history.
//
// This package defines repository interfaces that decouple the history store
// from the finder and the terminal interface. The BadgerDB implementation lives
// in storage/badger.
//
// # Architecture
//
//   - Repository: transaction support and Close, shared by all repositories
//   - HistoryRepository: accepted (query, selection) pairs with usage counts
//
// Entries are content addressed: the ID of a pair is core.IDFromContent of
// core.HistoryKey(query, selection), so re-accepting a pair updates the
// existing entry.
//
// # Usage
//
// Open a repository rooted at a directory:
//
//	backend, err := badger.OpenBackend("/path/to/history", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo, err := badger.NewHistoryRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryHistoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
