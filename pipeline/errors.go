package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileRepositoryRequired is returned when no profile repository is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository is required")

	// ErrAIProviderRequired is returned when no AI provider is provided.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidThreshold is returned for a negative pruning threshold.
	ErrInvalidThreshold = errors.New("pruning threshold must not be negative")

	// ErrInvalidLimit is returned for a non-positive lookup limit.
	ErrInvalidLimit = errors.New("limit must be at least 1")

	// ErrNilLogger is returned when a nil logger is supplied.
	ErrNilLogger = errors.New("logger is nil")
)

// Stage names used in StageError.
const (
	StageClassify = "classify"
	StageLookup   = "lookup"
	StageEmbed    = "embed"
	StageUniverse = "universe"
	StagePrune    = "prune"
	StageValidate = "validate"
	StageAssemble = "assemble"
)

// StageError wraps a failure with the pipeline stage it occurred in, so
// callers can tell a dead embedding host from a broken database.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
