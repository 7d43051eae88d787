package match

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/poiesic/verity/core"
)

const weightSumTolerance = 1e-6

// Weights controls how the three relevance signals are fused.
type Weights struct {
	Vector    float64
	Lexical   float64
	Freshness float64
}

// DefaultWeights returns the standard signal weighting.
func DefaultWeights() Weights {
	return Weights{Vector: 0.55, Lexical: 0.30, Freshness: 0.15}
}

// Validate checks that all weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Vector < 0 || w.Lexical < 0 || w.Freshness < 0 {
		return ErrInvalidWeights
	}
	if math.Abs(w.Vector+w.Lexical+w.Freshness-1) > weightSumTolerance {
		return ErrInvalidWeights
	}
	return nil
}

// withoutVector redistributes the vector weight across the remaining
// signals, preserving their relative proportions. Used in degraded mode when
// no query embedding is available.
func (w Weights) withoutVector() Weights {
	rest := w.Lexical + w.Freshness
	if rest <= 0 {
		return Weights{Lexical: 0.5, Freshness: 0.5}
	}
	return Weights{
		Lexical:   w.Lexical / rest,
		Freshness: w.Freshness / rest,
	}
}

// ScoreBreakdown carries the individual signal scores behind a combined score.
type ScoreBreakdown struct {
	Vector    float64
	Lexical   float64
	Freshness float64
}

// RankedAnswer is one ranking result: the candidate, its combined score, and
// the per-signal breakdown.
type RankedAnswer struct {
	Answer    *core.VerifiedAnswer
	Score     float64
	Breakdown ScoreBreakdown
}

// Query is the analyzed form of an incoming question.
type Query struct {
	Text     string
	Intent   core.Intent
	Keywords KeywordProfile
	Vector   []float32 // nil when ranking in degraded (lexical-only) mode
}

// RankOptions parameterizes a ranking call. The zero value is not usable;
// start from DefaultRankOptions.
type RankOptions struct {
	Weights      Weights
	Threshold    float64
	Limit        int
	HalfLifeDays float64
	Dimensions   int
	Now          time.Time
}

// DefaultRankOptions returns the standard ranking parameters.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		Weights:      DefaultWeights(),
		Threshold:    0.7,
		Limit:        5,
		HalfLifeDays: DefaultHalfLifeDays,
		Dimensions:   core.DefaultEmbeddingDimensions,
	}
}

// Rank scores every candidate against the query and returns at most
// opts.Limit results with combined score >= opts.Threshold, ordered by
// combined score descending. Ties break on higher lexical score, then more
// recent creation time, then id, so identical inputs always produce
// identical output.
//
// A nil query vector ranks in degraded mode: the vector weight is
// redistributed over the lexical and freshness signals. A non-nil query
// vector whose length disagrees with opts.Dimensions fails with
// core.ErrDimensionMismatch.
func Rank(query Query, candidates []*core.VerifiedAnswer, opts RankOptions) ([]*RankedAnswer, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if query.Vector != nil && len(query.Vector) != opts.Dimensions {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, expected %d",
			core.ErrDimensionMismatch, len(query.Vector), opts.Dimensions)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	weights := opts.Weights
	degraded := query.Vector == nil
	if degraded {
		weights = weights.withoutVector()
	}

	profiles := make([]KeywordProfile, len(candidates))
	for i, candidate := range candidates {
		profiles[i] = ExtractKeywords(candidate.Question + " " + candidate.Answer)
	}
	stats := NewCorpusStats(profiles)

	results := make([]*RankedAnswer, 0, len(candidates))
	for i, candidate := range candidates {
		breakdown := ScoreBreakdown{
			Lexical:   LexicalScore(query.Keywords, profiles[i], stats),
			Freshness: FreshnessScoreWithHalfLife(candidate.CreatedAt, now, opts.HalfLifeDays),
		}
		if !degraded {
			breakdown.Vector = cosineSimilarity(query.Vector, candidate.Vector)
		}

		combined := weights.Vector*breakdown.Vector +
			weights.Lexical*breakdown.Lexical +
			weights.Freshness*breakdown.Freshness
		if combined < opts.Threshold {
			continue
		}

		results = append(results, &RankedAnswer{
			Answer:    candidate,
			Score:     combined,
			Breakdown: breakdown,
		})
	}

	slices.SortFunc(results, compareRanked)

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// compareRanked orders results by combined score descending, breaking ties
// by lexical score, then creation time (newer first), then id.
func compareRanked(a, b *RankedAnswer) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	}
	switch {
	case a.Breakdown.Lexical > b.Breakdown.Lexical:
		return -1
	case a.Breakdown.Lexical < b.Breakdown.Lexical:
		return 1
	}
	switch {
	case a.Answer.CreatedAt.After(b.Answer.CreatedAt):
		return -1
	case a.Answer.CreatedAt.Before(b.Answer.CreatedAt):
		return 1
	}
	switch {
	case a.Answer.Id < b.Answer.Id:
		return -1
	case a.Answer.Id > b.Answer.Id:
		return 1
	}
	return 0
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// clipped to [0, 1]: negative similarity carries no relevance signal. Vectors
// of unequal length or zero magnitude score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
