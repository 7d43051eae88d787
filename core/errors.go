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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidInput indicates a malformed submission or query.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch indicates an embedding whose length disagrees with
	// the configured dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUpstreamUnavailable indicates the embedding collaborator is
	// unreachable or returned an unusable result.
	ErrUpstreamUnavailable = errors.New("embedding service unavailable")

	// ErrEmptyQuestion indicates the Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates the Answer field is empty.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrEmptyVerifier indicates the verifier identity is missing.
	ErrEmptyVerifier = errors.New("verifier cannot be empty")

	// ErrInvalidRating indicates a rating outside {-1, 0, 1}.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidVerificationType indicates an invalid VerificationType value.
	ErrInvalidVerificationType = errors.New("invalid verification type")

	// ErrInvalidIntent indicates an unknown intent label.
	ErrInvalidIntent = errors.New("invalid intent label")
)
