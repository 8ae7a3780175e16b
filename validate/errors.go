package validate

import "errors"

var (
	// ErrNilChecker is returned when no relevance checker is provided.
	ErrNilChecker = errors.New("candidate validator is nil")

	// ErrNilTextSource is returned when Validate is called without a text source.
	ErrNilTextSource = errors.New("text source is nil")

	// ErrInvalidWorkers is returned for a worker count below 1.
	ErrInvalidWorkers = errors.New("max workers must be at least 1")

	// ErrInvalidBatchSize is returned for a batch size below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")

	// ErrInvalidBatchDelay is returned for a negative batch delay.
	ErrInvalidBatchDelay = errors.New("batch delay must not be negative")

	// ErrNilLogger is returned when a nil logger is supplied.
	ErrNilLogger = errors.New("logger is nil")
)
