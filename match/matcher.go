package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/verity/ai"
	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/storage"
)

// Matcher retrieves the best-matching verified answers for a question using
// hybrid scoring. It holds no mutable state of its own and is safe for
// concurrent use; all shared state lives in the answer repository.
type Matcher struct {
	answers  storage.AnswerRepository
	embedder ai.Embedder
	config   *Config
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithConfig sets the matching parameters.
// Default is DefaultConfig().
func WithConfig(config *Config) Option {
	return func(m *Matcher) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		m.config = config
		return nil
	}
}

// NewMatcher creates a new matcher.
func NewMatcher(
	answers storage.AnswerRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Matcher, error) {
	if answers == nil {
		return nil, ErrAnswerRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	m := &Matcher{
		answers:  answers,
		embedder: embedder,
		config:   DefaultConfig(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Match returns the best-matching verified answers for the question, ranked
// by combined score. Returns core.ErrInvalidInput for an empty question and
// core.ErrUpstreamUnavailable when the embedding service fails and degraded
// mode is disabled.
func (m *Matcher) Match(ctx context.Context, question string) ([]*RankedAnswer, error) {
	return m.MatchWithMonitor(ctx, question, nil)
}

// MatchWithMonitor matches with monitoring. The monitor receives callbacks
// at each stage of the match.
func (m *Matcher) MatchWithMonitor(ctx context.Context, question string, monitor MatchMonitor) ([]*RankedAnswer, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidInput, core.ErrEmptyQuestion)
	}

	monitor.Start(question)

	// Pure analysis of the raw question
	query := Query{
		Text:     question,
		Intent:   ClassifyIntent(question),
		Keywords: ExtractKeywords(question),
	}
	monitor.AfterAnalysis(query.Intent, query.Keywords)

	// Obtain the query embedding, or degrade to lexical+freshness ranking
	vector, err := m.embedQuery(ctx, question)
	if err != nil {
		if !m.config.DegradedMode {
			return nil, err
		}
		m.logger.Warn("embedding unavailable, ranking without vector signal", "err", err)
		monitor.EmbeddingDegraded(err)
	} else {
		query.Vector = vector
		monitor.AfterEmbedding(vector)
	}

	candidates, err := m.listCandidates(ctx, query.Intent)
	if err != nil {
		m.logger.Error("error listing candidates", "err", err)
		return nil, err
	}
	monitor.AfterCandidates(candidates)

	results, err := Rank(query, candidates, m.config.rankOptions(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	monitor.Finish(results)
	return results, nil
}

// embedQuery fetches the query embedding and verifies its dimensionality.
// All failures are reported as core.ErrUpstreamUnavailable: a mismatched or
// empty vector indicates an embedding-service misconfiguration the caller
// must not silently absorb.
func (m *Matcher) embedQuery(ctx context.Context, question string) ([]float32, error) {
	vector, err := m.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	if len(vector) != m.config.Dimensions {
		return nil, fmt.Errorf("%w: embedder returned %d dimensions, expected %d",
			core.ErrUpstreamUnavailable, len(vector), m.config.Dimensions)
	}
	return vector, nil
}

// listCandidates fetches the candidate pool snapshot, optionally pre-filtered
// by the query intent.
func (m *Matcher) listCandidates(ctx context.Context, intent core.Intent) ([]*core.VerifiedAnswer, error) {
	if !m.config.FilterByIntent {
		return m.answers.ListCandidates(ctx, nil)
	}

	candidates, err := m.answers.ListCandidates(ctx, &storage.CandidateFilter{Intent: intent})
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	// Nothing under this intent; widen to the full pool.
	return m.answers.ListCandidates(ctx, nil)
}
