package match

import (
	"math"
	"testing"
	"time"

	"github.com/poiesic/verity/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzedQuery(text string) Query {
	return Query{
		Text:     text,
		Intent:   ClassifyIntent(text),
		Keywords: ExtractKeywords(text),
	}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.NoError(t, Weights{Vector: 1, Lexical: 0, Freshness: 0}.Validate())
	assert.ErrorIs(t, Weights{Vector: 0.5, Lexical: 0.5, Freshness: 0.5}.Validate(), ErrInvalidWeights)
	assert.ErrorIs(t, Weights{Vector: 1.2, Lexical: -0.1, Freshness: -0.1}.Validate(), ErrInvalidWeights)
}

func TestRankOrdersByScore(t *testing.T) {
	now := time.Now().UTC()
	candidates := []*core.VerifiedAnswer{
		{Id: 1, Question: "How do I reset my password?", Answer: "Use the portal reset link.", CreatedAt: now},
		{Id: 2, Question: "How do I book a meeting room?", Answer: "Use the calendar.", CreatedAt: now},
		{Id: 3, Question: "Password reset steps", Answer: "Open the portal, request a reset.", CreatedAt: now},
	}

	opts := DefaultRankOptions()
	opts.Threshold = 0
	opts.Now = now

	results, err := Rank(analyzedQuery("reset password"), candidates, opts)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	// The unrelated candidate cannot outrank the password answers
	assert.NotEqual(t, core.ID(2), results[0].Answer.Id)
}

func TestRankThresholdAndLimit(t *testing.T) {
	now := time.Now().UTC()
	var candidates []*core.VerifiedAnswer
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, &core.VerifiedAnswer{
			Id:        core.ID(i),
			Question:  "How do I reset my password?",
			Answer:    "Use the portal reset link.",
			CreatedAt: now,
		})
	}
	candidates = append(candidates, &core.VerifiedAnswer{
		Id: 99, Question: "Unrelated topic entirely", Answer: "Nothing here.", CreatedAt: now,
	})

	opts := DefaultRankOptions()
	opts.Threshold = 0.7
	opts.Limit = 5
	opts.Now = now

	results, err := Rank(analyzedQuery("reset password"), candidates, opts)
	require.NoError(t, err)

	assert.Len(t, results, 5)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.7)
		assert.NotEqual(t, core.ID(99), r.Answer.Id)
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	now := time.Now().UTC()
	older := now.Add(-24 * time.Hour)

	// Ids deliberately out of order; identical scores must tie-break on
	// creation time then id
	candidates := []*core.VerifiedAnswer{
		{Id: 7, Question: "reset password", Answer: "reset password", CreatedAt: older},
		{Id: 3, Question: "reset password", Answer: "reset password", CreatedAt: now},
		{Id: 5, Question: "reset password", Answer: "reset password", CreatedAt: now},
	}

	opts := DefaultRankOptions()
	opts.Threshold = 0
	opts.Now = now

	first, err := Rank(analyzedQuery("reset password"), candidates, opts)
	require.NoError(t, err)
	require.Len(t, first, 3)

	assert.Equal(t, core.ID(3), first[0].Answer.Id)
	assert.Equal(t, core.ID(5), first[1].Answer.Id)
	assert.Equal(t, core.ID(7), first[2].Answer.Id)

	// Same input, same output
	for i := 0; i < 5; i++ {
		again, err := Rank(analyzedQuery("reset password"), candidates, opts)
		require.NoError(t, err)
		require.Len(t, again, 3)
		for j := range again {
			assert.Equal(t, first[j].Answer.Id, again[j].Answer.Id)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestRankDimensionMismatch(t *testing.T) {
	query := analyzedQuery("reset password")
	query.Vector = []float32{0.1, 0.2, 0.3}

	opts := DefaultRankOptions() // expects 384 dimensions
	_, err := Rank(query, []*core.VerifiedAnswer{{Id: 1, Question: "q", Answer: "a"}}, opts)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestRankInvalidWeights(t *testing.T) {
	opts := DefaultRankOptions()
	opts.Weights = Weights{Vector: 0.9, Lexical: 0.9, Freshness: 0.9}
	_, err := Rank(analyzedQuery("q"), nil, opts)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestRankDegradedModeRedistributesWeights(t *testing.T) {
	now := time.Now().UTC()
	candidate := &core.VerifiedAnswer{
		Id:        1,
		Question:  "How do I reset my password?",
		Answer:    "Use the portal reset link.",
		CreatedAt: now,
	}

	opts := DefaultRankOptions()
	opts.Threshold = 0
	opts.Now = now

	// Nil query vector: 0.55 vector weight spreads over lexical and
	// freshness proportionally, giving 2/3 and 1/3
	results, err := Rank(analyzedQuery("reset password"), []*core.VerifiedAnswer{candidate}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Zero(t, r.Breakdown.Vector)
	expected := (2.0/3.0)*r.Breakdown.Lexical + (1.0/3.0)*r.Breakdown.Freshness
	assert.InDelta(t, expected, r.Score, 1e-9)
}

func TestRankZeroMagnitudeVectors(t *testing.T) {
	now := time.Now().UTC()
	query := analyzedQuery("reset password")
	query.Vector = make([]float32, 4) // zero vector

	candidate := &core.VerifiedAnswer{
		Id: 1, Question: "reset password", Answer: "reset password",
		Vector: []float32{0.5, 0.5, 0.5, 0.5}, CreatedAt: now,
	}

	opts := DefaultRankOptions()
	opts.Dimensions = 4
	opts.Threshold = 0
	opts.Now = now

	results, err := Rank(query, []*core.VerifiedAnswer{candidate}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Breakdown.Vector)
}

func TestRankScoreComposition(t *testing.T) {
	now := time.Now().UTC()

	// Candidate with cosine similarity 0.9 to the query vector, full
	// keyword overlap, created 30 days ago
	queryVec := []float32{1, 0}
	candidateVec := []float32{0.9, float32(math.Sqrt(1 - 0.81))}

	candidate := &core.VerifiedAnswer{
		Id:        1,
		Question:  "How do I reset my password?",
		Answer:    "Use the reset link in the portal to set a new password.",
		Vector:    candidateVec,
		CreatedAt: now.Add(-30 * 24 * time.Hour),
	}

	query := analyzedQuery("How do I reset my password?")
	query.Vector = queryVec

	opts := DefaultRankOptions()
	opts.Dimensions = 2
	opts.Threshold = 0
	opts.Now = now

	results, err := Rank(query, []*core.VerifiedAnswer{candidate}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 0.9, r.Breakdown.Vector, 1e-6)
	assert.Equal(t, 1.0, r.Breakdown.Lexical)

	freshness := math.Exp(-math.Ln2 * 30.0 / 180.0)
	assert.InDelta(t, freshness, r.Breakdown.Freshness, 1e-9)

	expected := 0.55*r.Breakdown.Vector + 0.30*1.0 + 0.15*freshness
	assert.InDelta(t, expected, r.Score, 1e-9)
}

func TestRankEmptyCandidates(t *testing.T) {
	opts := DefaultRankOptions()
	results, err := Rank(analyzedQuery("anything"), nil, opts)
	require.NoError(t, err)
	assert.Empty(t, results)
}
