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

import (
	"fmt"
	"strings"
)

// ValidateVerifiedAnswer validates a VerifiedAnswer according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Answer must not be empty
//   - Intent, if set, must be a known label
//
// NOT validated here:
//   - Vector length (the store enforces its configured dimensionality)
//   - ID (0 is valid; the store derives it from content)
func ValidateVerifiedAnswer(answer *VerifiedAnswer) error {
	if answer == nil {
		return fmt.Errorf("%w: answer is nil", ErrInvalidInput)
	}

	if strings.TrimSpace(answer.Question) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyQuestion)
	}

	if strings.TrimSpace(answer.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyAnswer)
	}

	if answer.Intent != "" && !ValidIntent(answer.Intent) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrInvalidIntent, answer.Intent)
	}

	return nil
}

// ValidateVerificationRecord validates a VerificationRecord according to domain rules.
//
// Validation rules:
//   - Rating must be -1, 0, or 1
//   - Verifier must not be empty
//   - Type must be valid (self, peer, or department)
func ValidateVerificationRecord(record *VerificationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: verification record is nil", ErrInvalidInput)
	}

	if err := ValidateRating(record.Rating); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if strings.TrimSpace(record.Verifier) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyVerifier)
	}

	if err := ValidateVerificationType(record.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// ValidateRating validates that a Rating has a valid value.
func ValidateRating(rating Rating) error {
	switch rating {
	case RatingRejected, RatingNeutral, RatingAccepted:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidRating, rating)
}

// ValidateVerificationType validates that a VerificationType has a valid value.
func ValidateVerificationType(verificationType VerificationType) error {
	switch verificationType {
	case VerificationTypeSelf, VerificationTypePeer, VerificationTypeDepartment:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidVerificationType, verificationType)
}
