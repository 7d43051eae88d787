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


// Package storage provides the storage abstraction layer for verity.
//
// This package defines the repository interface that decouples storage
// implementation from the matching logic, allowing different backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.AnswerRepository interface to
// enforce abstraction and enable alternative backend implementations:
//
//	repo, err := badger.NewAnswerRepository(backend, dimensions)
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Aggregates
//
// An answer's accepted/rejected counters are derived from its append-only
// verification record set. Implementations recompute them inside the same
// transaction that appends a record; they are never written independently,
// so the counters can always be reproduced by folding over the records.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. See AnswerRepository for the per-answer
// ordering guarantees.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
