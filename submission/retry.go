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


package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/verity/ai"
	"github.com/poiesic/verity/core"
)

// EmbedWithRetry fetches an embedding for text, retrying transient service
// failures with exponential backoff (baseDelay doubles on each retry).
//
// The returned vector is normalized to unit length and always has exactly
// dimensions elements. An empty or wrong-length vector from the service is a
// misconfiguration, not a transient fault: it fails immediately with
// core.ErrDimensionMismatch and is never retried, so a bad embedding service
// cannot slip vectorless answers past the caller.
func EmbedWithRetry(ctx context.Context, embedder ai.Embedder, text string, dimensions, maxAttempts int, baseDelay time.Duration) ([]float32, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		vector, err := embedder.EmbedText(ctx, text)
		if err == nil {
			if len(vector) != dimensions {
				return nil, fmt.Errorf("%w: embedder returned %d dimensions, expected %d",
					core.ErrDimensionMismatch, len(vector), dimensions)
			}
			if attempt > 1 {
				slog.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return NormalizeVector(vector), nil
		}
		lastErr = err

		slog.Debug("embedding failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", err)

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		// Exponential backoff: baseDelay * 2^(attempt-1)
		delay := baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
