package ai

import (
	"context"

	"github.com/quaesit/quaesit/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryClassifier decides whether a query is simple or complex.
// It is only consulted when the pattern rules are inconclusive.
// Implementations must be thread-safe for concurrent use.
type QueryClassifier interface {
	// ClassifyQuery returns LabelSimple or LabelComplex for the query.
	// Implementations should never return LabelUnknown; when in doubt,
	// LabelComplex is the safe answer (over-processing beats missing results).
	ClassifyQuery(ctx context.Context, query string) (core.QueryLabel, error)
}

// Verdict is the validation oracle's decision for a single candidate.
type Verdict struct {
	// Accepted is true when the candidate's text satisfies the query.
	Accepted bool

	// Rationale is the oracle's reasoning, when available.
	Rationale string
}

// CandidateValidator is the expensive semantic check applied to each
// surviving candidate. Calls may be slow and may fail transiently; any
// retry policy belongs to the implementation, not to the caller.
// Implementations must be thread-safe for concurrent use.
type CandidateValidator interface {
	// ValidateCandidate decides whether the candidate text satisfies the query.
	ValidateCandidate(ctx context.Context, query, text string) (Verdict, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the embedder, classifier, and
// validator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryClassifier returns the fallback classification service.
	// The returned QueryClassifier is safe for concurrent use.
	QueryClassifier() QueryClassifier

	// CandidateValidator returns the validation oracle.
	// The returned CandidateValidator is safe for concurrent use.
	CandidateValidator() CandidateValidator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
