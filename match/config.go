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


package match

import (
	"errors"
	"time"

	"github.com/poiesic/verity/core"
)

// Config holds matching parameters for a Matcher.
type Config struct {
	// Weights fuses the vector, lexical, and freshness signals.
	// Must be non-negative and sum to 1.
	Weights Weights

	// Threshold is the minimum combined score a candidate must reach.
	// Default: 0.7
	Threshold float64

	// Limit is the maximum number of results returned.
	// Default: 5
	Limit int

	// HalfLifeDays is the freshness half-life in days.
	// Default: 180
	HalfLifeDays float64

	// Dimensions is the expected embedding vector length.
	// Default: 384
	Dimensions int

	// DegradedMode ranks on lexical and freshness signals alone when the
	// embedding service is unavailable, instead of failing the match.
	// Default: true
	DegradedMode bool

	// FilterByIntent restricts the candidate pool to answers sharing the
	// query's classified intent, falling back to the full pool when the
	// filtered pool is empty.
	// Default: false
	FilterByIntent bool
}

// DefaultConfig returns a Config with the standard matching parameters.
func DefaultConfig() *Config {
	return &Config{
		Weights:      DefaultWeights(),
		Threshold:    0.7,
		Limit:        5,
		HalfLifeDays: DefaultHalfLifeDays,
		Dimensions:   core.DefaultEmbeddingDimensions,
		DegradedMode: true,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("match config: Threshold must be in [0, 1]")
	}
	if c.Limit <= 0 {
		return errors.New("match config: Limit must be positive")
	}
	if c.HalfLifeDays <= 0 {
		return errors.New("match config: HalfLifeDays must be positive")
	}
	if c.Dimensions <= 0 {
		return errors.New("match config: Dimensions must be positive")
	}
	return nil
}

// rankOptions converts the config into per-call ranking options.
func (c *Config) rankOptions(now time.Time) RankOptions {
	return RankOptions{
		Weights:      c.Weights,
		Threshold:    c.Threshold,
		Limit:        c.Limit,
		HalfLifeDays: c.HalfLifeDays,
		Dimensions:   c.Dimensions,
		Now:          now,
	}
}
