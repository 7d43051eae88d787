package submission

import "errors"

var (
	// ErrAnswerRepositoryRequired is returned when an answer repository is not provided.
	ErrAnswerRepositoryRequired = errors.New("answer repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
