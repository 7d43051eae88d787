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


// Package match implements hybrid semantic matching of questions against
// verified answers.
//
// The Matcher type combines three relevance signals per candidate:
//   - Vector similarity between query and answer embeddings
//   - Lexical keyword overlap, scored BM25-style against the candidate pool
//   - Freshness, an exponential decay on the answer's age
//
// Signals are fused with configurable weights into a single combined score,
// and candidates below a score threshold are dropped. Intent classification
// and keyword extraction are pure functions usable on their own; all shared
// mutable state lives behind the storage.AnswerRepository interface.
package match
