package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/verity/ai"
	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/match"
	"github.com/poiesic/verity/storage"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Submission is one verified question/answer judgment entering the store.
type Submission struct {
	Question    string
	Answer      string
	Rating      core.Rating
	Verifier    string
	Type        core.VerificationType
	Departments []string
	DueDate     time.Time
}

// Pipeline orchestrates the intake of verified answers. It embeds new
// question/answer pairs, classifies their intent, and records verification
// judgments, creating the answer on first submission.
type Pipeline struct {
	answers     storage.AnswerRepository
	embedder    ai.Embedder
	pool        *ants.Pool
	dimensions  int
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch submissions.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDimensions sets the expected embedding vector length.
// Default is core.DefaultEmbeddingDimensions.
func WithDimensions(dimensions int) Option {
	return func(p *Pipeline) error {
		if dimensions <= 0 {
			dimensions = core.DefaultEmbeddingDimensions
		}
		p.dimensions = dimensions
		return nil
	}
}

// WithRetry sets the embedding retry policy.
// Default is 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// NewPipeline creates a new submission pipeline.
func NewPipeline(
	answers storage.AnswerRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if answers == nil {
		return nil, ErrAnswerRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		answers:     answers,
		embedder:    embedder,
		pool:        pool,
		dimensions:  core.DefaultEmbeddingDimensions,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Submit records one verified submission and returns the answer as stored.
// The first submission of a question/answer pair creates the record: the
// question is embedded, the intent classified, and the pair stored under its
// content-derived ID. Every submission, first or repeat, appends a
// verification record.
func (p *Pipeline) Submit(ctx context.Context, sub *Submission) (*core.VerifiedAnswer, error) {
	answer := &core.VerifiedAnswer{
		Question:    sub.Question,
		Answer:      sub.Answer,
		Departments: sub.Departments,
	}
	if err := core.ValidateVerifiedAnswer(answer); err != nil {
		return nil, err
	}

	record := core.VerificationRecord{
		Rating:      sub.Rating,
		Verifier:    sub.Verifier,
		Type:        sub.Type,
		Departments: sub.Departments,
		DueDate:     sub.DueDate,
	}
	if err := core.ValidateVerificationRecord(&record); err != nil {
		return nil, err
	}

	id := core.IDFromContent(answer.Tuple())

	// Fast path: the pair is already stored, just append the judgment.
	updated, err := p.answers.AddVerification(ctx, id, record)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// First submission of this pair. Embed and classify, then create.
	// AddAnswers is create-if-absent, so a concurrent first submission of
	// the same pair is harmless.
	vector, err := p.embedQuestion(ctx, sub.Question)
	if err != nil {
		return nil, err
	}
	answer.Vector = vector
	answer.Intent = match.ClassifyIntent(sub.Question)

	if _, err := p.answers.AddAnswers(ctx, answer); err != nil {
		return nil, err
	}
	return p.answers.AddVerification(ctx, answer.Id, record)
}

// SubmitBatch submits multiple verified submissions concurrently using the
// worker pool. Results are returned in submission order; failed submissions
// leave a nil slot and their errors are joined into the returned error.
func (p *Pipeline) SubmitBatch(ctx context.Context, subs []*Submission) ([]*core.VerifiedAnswer, error) {
	results := make([]*core.VerifiedAnswer, len(subs))
	errs := make([]error, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			answer, err := p.Submit(ctx, sub)
			if err != nil {
				errs[i] = fmt.Errorf("submission %d: %w", i, err)
				return
			}
			results[i] = answer
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// embedQuestion fetches a normalized embedding for the question, retrying
// transient failures. Every failure, including an empty or wrong-length
// vector from the service, surfaces as core.ErrUpstreamUnavailable so no
// vectorless answer ever reaches the store.
func (p *Pipeline) embedQuestion(ctx context.Context, question string) ([]float32, error) {
	vector, err := EmbedWithRetry(ctx, p.embedder, question, p.dimensions, p.maxAttempts, p.baseDelay)
	if err != nil {
		p.logger.Error("error embedding question", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	return vector, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
