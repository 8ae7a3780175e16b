package openai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/quaesit/quaesit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// CandidateValidator implements ai.CandidateValidator using OpenAI-compatible
// chat APIs. Each call judges one candidate profile against the query via the
// thinking/answer protocol.
type CandidateValidator struct {
	client          llms.Model
	maxProfileChars int
	maxRetries      int
	retryDelay      time.Duration
	logger          *slog.Logger
}

// newCandidateValidator is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newCandidateValidator(config *ai.Config) (*CandidateValidator, error) {
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

	return &CandidateValidator{
		client:          client,
		maxProfileChars: config.MaxProfileChars,
		maxRetries:      config.MaxRetries,
		retryDelay:      config.RetryBaseDelay,
		logger:          slog.Default().With("component", "openai-validator"),
	}, nil
}

// NewCandidateValidator creates a new validation oracle using the provided
// configuration.
//
// Returns ai.CandidateValidator interface to enforce abstraction.
func NewCandidateValidator(config *ai.Config) (ai.CandidateValidator, error) {
	return newCandidateValidator(config)
}

// ValidateCandidate asks the model whether the candidate's text satisfies the
// query. Transient call failures are retried with exponential backoff before
// being surfaced to the caller.
func (v *CandidateValidator) ValidateCandidate(ctx context.Context, query, text string) (ai.Verdict, error) {
	if len(text) > v.maxProfileChars {
		text = text[:v.maxProfileChars]
	}

	userPrompt := "Query: " + query + "\n\nProfile:\n" + text +
		"\n\nDoes this person's experience match the query?"

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(validatorSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	var response *llms.ContentResponse
	err := retryWithBackoff(ctx, func() error {
		var callErr error
		response, callErr = v.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
		return callErr
	}, v.maxRetries, v.retryDelay)
	if err != nil {
		v.logger.Error("candidate validation failed", "err", err)
		return ai.Verdict{}, err
	}

	if len(response.Choices) < 1 {
		v.logger.Warn("validator returned no choices, treating as fail")
		return ai.Verdict{Accepted: false}, nil
	}

	return parseVerdict(response.Choices[0].Content), nil
}

// parseVerdict extracts the Pass/Fail decision and the reasoning from a
// thinking/answer protocol response. A missing or malformed answer tag is a
// fail, never an error: the model responded, it just didn't say Pass.
func parseVerdict(response string) ai.Verdict {
	verdict := ai.Verdict{
		Rationale: extractTag(response, "thinking"),
	}

	answer := extractTag(response, "answer")
	verdict.Accepted = strings.EqualFold(strings.TrimSpace(answer), "pass")

	return verdict
}

// extractTag returns the trimmed content between <tag> and </tag>, or ""
// when either delimiter is absent.
func extractTag(s, tag string) string {
	open := "<" + tag + ">"
	close := "</" + tag + ">"

	start := strings.Index(s, open)
	if start < 0 {
		return ""
	}
	start += len(open)

	end := strings.Index(s[start:], close)
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(s[start : start+end])
}
