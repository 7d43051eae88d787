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


// Package submission handles the intake of verified answers.
//
// A submission couples a question/answer pair with one verifier's judgment.
// The pipeline stores the pair on first sight (embedding the question and
// classifying its intent) and appends the judgment as a verification record.
// Repeat submissions of the same pair skip the embedding step entirely.
//
// Batch submissions run on an ants worker pool so embedding calls for
// distinct pairs proceed in parallel.
package submission
