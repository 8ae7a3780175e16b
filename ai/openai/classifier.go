package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryClassifier implements ai.QueryClassifier using OpenAI-compatible chat APIs.
// It is the fallback behind the rule-table pattern classifier.
type QueryClassifier struct {
	client     llms.Model
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// newQueryClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryClassifier(config *ai.Config) (*QueryClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryClassifier{
		client:     client,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryBaseDelay,
		logger:     slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewQueryClassifier creates a new fallback classifier using the provided
// configuration.
//
// Returns ai.QueryClassifier interface to enforce abstraction.
func NewQueryClassifier(config *ai.Config) (ai.QueryClassifier, error) {
	return newQueryClassifier(config)
}

// ClassifyQuery asks the model whether the query is simple or complex.
// An unrecognized response defaults to complex: over-processing beats
// missing results.
func (c *QueryClassifier) ClassifyQuery(ctx context.Context, query string) (core.QueryLabel, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classifierSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("Classify this query: " + query)},
		},
	}

	var response *llms.ContentResponse
	err := retryWithBackoff(ctx, func() error {
		var callErr error
		response, callErr = c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
		return callErr
	}, c.maxRetries, c.retryDelay)
	if err != nil {
		c.logger.Error("fallback classification failed", "query", query, "err", err)
		return core.LabelUnknown, err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("classifier returned no choices, defaulting to complex", "query", query)
		return core.LabelComplex, nil
	}

	label := core.ParseQueryLabel(response.Choices[0].Content)
	if label == core.LabelUnknown {
		c.logger.Debug("unrecognized classifier response, defaulting to complex",
			"query", query, "response", response.Choices[0].Content)
		return core.LabelComplex, nil
	}

	return label, nil
}
