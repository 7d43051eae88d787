package match

import (
	"math"
	"time"
)

// DefaultHalfLifeDays is the age at which an answer's freshness score halves.
const DefaultHalfLifeDays = 180.0

const hoursPerDay = 24

// FreshnessScore computes the recency score for an answer created at
// createdAt, evaluated at now, using the default half-life.
func FreshnessScore(createdAt, now time.Time) float64 {
	return FreshnessScoreWithHalfLife(createdAt, now, DefaultHalfLifeDays)
}

// FreshnessScoreWithHalfLife computes exp(-ln2 * ageDays / halfLifeDays).
// A brand-new answer scores 1, an answer exactly one half-life old scores
// 0.5, and the score decays toward but never reaches 0. Negative ages from
// clock skew clamp to 0.
func FreshnessScoreWithHalfLife(createdAt, now time.Time, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	ageDays := now.Sub(createdAt).Hours() / hoursPerDay
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-math.Ln2 * ageDays / halfLifeDays)
}
