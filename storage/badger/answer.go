package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/storage"
)

// AnswerRepository implements storage.AnswerRepository for BadgerDB.
//
// Each answer is stored under three keys: the record itself, an intent index
// entry, and a separate view counter. Keeping views out of the record means a
// view increment and a verification append never conflict at commit time.
type AnswerRepository struct {
	backend    *Backend
	dimensions int
}

var _ storage.AnswerRepository = (*AnswerRepository)(nil)

// NewAnswerRepository creates a new AnswerRepository.
// dimensions is the expected embedding vector length; values <= 0 fall back
// to core.DefaultEmbeddingDimensions.
func NewAnswerRepository(backend *Backend, dimensions int) (storage.AnswerRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if dimensions <= 0 {
		dimensions = core.DefaultEmbeddingDimensions
	}

	return &AnswerRepository{
		backend:    backend,
		dimensions: dimensions,
	}, nil
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *AnswerRepository) Close() error {
	return nil
}

// AddAnswers adds one or more verified answers to storage.
// Answers without an ID get a content-based ID derived from their
// question/answer tuple. Existing answers are left untouched and returned
// as stored, so concurrent first submissions converge on one record.
func (r *AnswerRepository) AddAnswers(ctx context.Context, answers ...*core.VerifiedAnswer) ([]*core.VerifiedAnswer, error) {
	// Validate everything up front: nothing is written on a bad batch.
	// Every stored answer must carry a vector of the configured length;
	// vectorless records would silently drop out of semantic ranking.
	for _, answer := range answers {
		if err := core.ValidateVerifiedAnswer(answer); err != nil {
			return nil, err
		}
		if len(answer.Vector) != r.dimensions {
			return nil, fmt.Errorf("%w: vector has %d dimensions, expected %d",
				core.ErrDimensionMismatch, len(answer.Vector), r.dimensions)
		}
	}

	now := time.Now().UTC()
	err := r.backend.WithWriteRetry(func(tx *badger.Txn) error {
		for _, answer := range answers {
			if answer.Id == 0 {
				answer.Id = core.IDFromContent(answer.Tuple())
			}
			key := makeAnswerKey(answer.Id)

			existing, err := readAnswer(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				*answer = *existing
				continue
			}

			if answer.CreatedAt.IsZero() {
				answer.CreatedAt = now
			}
			answer.UpdatedAt = answer.CreatedAt
			answer.RecomputeAggregates()

			if err := tx.Set(key, storage.MarshalAnswer(answer)); err != nil {
				return err
			}

			// Intent index
			if answer.Intent != "" {
				intentKey := makeAnswerIntentKey(answer.Intent, answer.Id)
				if err := tx.Set(intentKey, storage.MarshalID(answer.Id)); err != nil {
					return err
				}
			}

			// View counter starts at zero under its own key
			if err := tx.Set(makeAnswerViewsKey(answer.Id), storage.MarshalViews(0)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})

	if err != nil {
		return nil, err
	}
	return answers, nil
}

// GetAnswer retrieves a single verified answer by ID.
func (r *AnswerRepository) GetAnswer(ctx context.Context, id core.ID) (*core.VerifiedAnswer, error) {
	var result *core.VerifiedAnswer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readAnswer(tx, makeAnswerKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAnswers retrieves multiple verified answers by their IDs.
func (r *AnswerRepository) GetAnswers(ctx context.Context, ids ...core.ID) ([]*core.VerifiedAnswer, error) {
	var result []*core.VerifiedAnswer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			answer, err := readAnswer(tx, makeAnswerKey(id))
			if err != nil {
				return err
			}
			if answer != nil {
				result = append(result, answer)
			}
		}
		return nil
	}, false)
	return result, err
}

// AddVerification appends a verification record to an answer and recomputes
// its aggregates from the full record set. A missing record timestamp is
// filled with the current time. Commit conflicts between concurrent appends
// to the same answer are retried, so every recompute observes all prior
// records.
func (r *AnswerRepository) AddVerification(ctx context.Context, id core.ID, record core.VerificationRecord) (*core.VerifiedAnswer, error) {
	if err := core.ValidateVerificationRecord(&record); err != nil {
		return nil, err
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	var result *core.VerifiedAnswer
	err := r.backend.WithWriteRetry(func(tx *badger.Txn) error {
		key := makeAnswerKey(id)
		answer, err := readAnswer(tx, key)
		if err != nil {
			return err
		}
		if answer == nil {
			return storage.ErrNotFound
		}

		answer.Verifications = append(answer.Verifications, record)
		answer.RecomputeAggregates()
		answer.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalAnswer(answer)); err != nil {
			return err
		}
		result = answer
		return tx.Commit()
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// IncrementViews bumps the answer's view counter. Only the counter key is
// read and written, so this never contends with verification updates.
func (r *AnswerRepository) IncrementViews(ctx context.Context, id core.ID) error {
	return r.backend.WithWriteRetry(func(tx *badger.Txn) error {
		key := makeAnswerViewsKey(id)
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var views uint64
		if err := item.Value(func(val []byte) error {
			var valErr error
			views, valErr = storage.UnmarshalViews(val)
			return valErr
		}); err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalViews(views+1)); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// GetAggregates returns the answer's counters from a single read snapshot.
func (r *AnswerRepository) GetAggregates(ctx context.Context, id core.ID) (*core.Aggregates, error) {
	var result *core.Aggregates
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		answer, err := readAnswer(tx, makeAnswerKey(id))
		if err != nil {
			return err
		}
		if answer == nil {
			return storage.ErrNotFound
		}

		var views uint64
		item, err := tx.Get(makeAnswerViewsKey(id))
		if err != nil {
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		} else {
			if err := item.Value(func(val []byte) error {
				var valErr error
				views, valErr = storage.UnmarshalViews(val)
				return valErr
			}); err != nil {
				return err
			}
		}

		result = &core.Aggregates{
			AcceptedCount: answer.AcceptedCount,
			RejectedCount: answer.RejectedCount,
			Views:         views,
		}
		return nil
	}, false)
	return result, err
}

// ListCandidates returns the non-archived answers matching the filter.
// The whole listing runs in one read transaction, so the result is a
// consistent snapshot of the store.
func (r *AnswerRepository) ListCandidates(ctx context.Context, filter *storage.CandidateFilter) ([]*core.VerifiedAnswer, error) {
	var results []*core.VerifiedAnswer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		if filter != nil && filter.Intent != "" {
			results, err = r.listByIntent(tx, filter)
		} else {
			results, err = r.listAll(tx, filter)
		}
		return err
	}, false)
	return results, err
}

// listByIntent walks the intent index and resolves each entry to its record.
func (r *AnswerRepository) listByIntent(tx *badger.Txn, filter *storage.CandidateFilter) ([]*core.VerifiedAnswer, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialAnswerIntentKey(filter.Intent)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var results []*core.VerifiedAnswer
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var id core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}

		answer, err := readAnswer(tx, makeAnswerKey(id))
		if err != nil {
			return nil, err
		}
		if answer == nil || !matchesFilter(answer, filter) {
			continue
		}
		results = append(results, answer)
	}
	return results, nil
}

// listAll walks the primary record keyspace.
func (r *AnswerRepository) listAll(tx *badger.Txn, filter *storage.CandidateFilter) ([]*core.VerifiedAnswer, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(answerRecordPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var results []*core.VerifiedAnswer
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var answer *core.VerifiedAnswer
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			answer, err = storage.UnmarshalAnswer(val)
			return err
		}); err != nil {
			return nil, err
		}
		if answer == nil || !matchesFilter(answer, filter) {
			continue
		}
		results = append(results, answer)
	}
	return results, nil
}

// ArchiveAnswers marks answers as archived so they drop out of candidate
// listings. The records and their verification history are retained.
func (r *AnswerRepository) ArchiveAnswers(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithWriteRetry(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeAnswerKey(id)
			answer, err := readAnswer(tx, key)
			if err != nil {
				return err
			}
			if answer == nil {
				return storage.ErrNotFound
			}
			if answer.Archived {
				continue
			}

			answer.Archived = true
			answer.UpdatedAt = time.Now().UTC()
			if err := tx.Set(key, storage.MarshalAnswer(answer)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// Helper methods

// matchesFilter reports whether an answer belongs in a candidate listing.
func matchesFilter(answer *core.VerifiedAnswer, filter *storage.CandidateFilter) bool {
	if answer.Archived {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.Department != "" && !slices.Contains(answer.Departments, filter.Department) {
		return false
	}
	return true
}

// readAnswer reads a verified answer from the transaction.
// Returns nil without error when the key does not exist.
func readAnswer(tx *badger.Txn, key []byte) (*core.VerifiedAnswer, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var answer *core.VerifiedAnswer
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		answer, unmarshalErr = storage.UnmarshalAnswer(val)
		return unmarshalErr
	})
	return answer, err
}
