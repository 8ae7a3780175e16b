package ingest

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when no profile repository is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository is required")

	// ErrAIProviderRequired is returned when no AI provider is provided.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrInvalidBatchSize is returned for a batch size below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")

	// ErrInvalidPoolSize is returned for a pool size below 1.
	ErrInvalidPoolSize = errors.New("pool size must be at least 1")

	// ErrEmbeddingCountMismatch is returned when the embedding service
	// returns a different number of vectors than texts sent.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match text count")

	// ErrNilLogger is returned when a nil logger is supplied.
	ErrNilLogger = errors.New("logger is nil")
)
