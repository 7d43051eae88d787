package storage

import (
	"context"

	"github.com/poiesic/verity/core"
)

// CandidateFilter restricts the candidate pool returned by ListCandidates.
// Zero-valued fields do not filter.
type CandidateFilter struct {
	// Intent keeps only answers labeled with this intent.
	Intent core.Intent
	// Department keeps only answers tagged with this department.
	Department string
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access. Each
// repository operation is atomic on its own; there is no cross-operation
// transaction surface.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// AnswerRepository provides operations for managing verified answers.
//
// Concurrency contract: AddVerification calls for the same answer id are
// serialized against each other, so every aggregate recompute observes a
// consistent record set. Writes to different answer ids proceed in parallel.
// IncrementViews never contends with verification writes. ListCandidates
// returns a consistent snapshot: concurrent writes are observed either fully
// or not at all.
type AnswerRepository interface {
	Repository

	// AddAnswers adds one or more verified answers to storage.
	// For answers with ID=0, derives a content-based ID from the
	// question/answer pair. Sets CreatedAt if not already set.
	// Answers whose ID already exists are left untouched, so concurrent
	// first submissions of the same pair cannot clobber each other.
	// Every answer must carry a vector of the store's configured
	// dimensionality; the whole batch is validated before anything is
	// written, and a core.ErrDimensionMismatch leaves the store unchanged.
	AddAnswers(ctx context.Context, answers ...*core.VerifiedAnswer) ([]*core.VerifiedAnswer, error)

	// GetAnswer retrieves a single answer by ID.
	// Returns ErrNotFound if the answer doesn't exist.
	GetAnswer(ctx context.Context, id core.ID) (*core.VerifiedAnswer, error)

	// GetAnswers retrieves multiple answers by their IDs.
	// Returns only the answers that exist (no error for missing answers).
	GetAnswers(ctx context.Context, ids ...core.ID) ([]*core.VerifiedAnswer, error)

	// AddVerification appends a verification record to an answer and
	// recomputes the accepted/rejected counters from the full record set.
	// Identical records are appended as new, distinct judgments (no dedup).
	// Returns the updated answer, or ErrNotFound if the answer doesn't exist.
	AddVerification(ctx context.Context, id core.ID, record core.VerificationRecord) (*core.VerifiedAnswer, error)

	// IncrementViews bumps the answer's monotonic view counter.
	// Returns ErrNotFound if the answer doesn't exist.
	IncrementViews(ctx context.Context, id core.ID) error

	// GetAggregates returns the answer's counters, consistent with the
	// verification record set at the time of the read.
	// Returns ErrNotFound if the answer doesn't exist.
	GetAggregates(ctx context.Context, id core.ID) (*core.Aggregates, error)

	// ListCandidates returns the non-archived answers matching the filter,
	// read as one consistent snapshot. A nil filter returns all candidates.
	ListCandidates(ctx context.Context, filter *CandidateFilter) ([]*core.VerifiedAnswer, error)

	// ArchiveAnswers soft-deletes answers: they are excluded from candidate
	// listing but retained with their verification history.
	// Returns ErrNotFound if any answer doesn't exist.
	ArchiveAnswers(ctx context.Context, ids ...core.ID) error
}
