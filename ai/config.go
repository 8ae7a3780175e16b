// Copyright 2026 Quaesit Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// ChatHost is the base URL for the classification/validation service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ChatHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// ChatModel is the model identifier to use for classification and validation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	ChatModel string

	// MaxProfileChars caps how much profile text is sent to the validation
	// oracle per call, to stay under model context limits.
	// Default: 3000
	MaxProfileChars int

	// MaxRetries is the maximum number of attempts for transiently failing
	// chat calls. Default: 3
	MaxRetries int

	// RetryBaseDelay is the base delay for exponential backoff between
	// retries. Default: 500ms
	RetryBaseDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithChatHost sets the classification/validation service host URL.
func WithChatHost(host string) ConfigOption {
	return func(c *Config) {
		c.ChatHost = host
	}
}

// WithHost sets both embedding and chat hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ChatHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithMaxProfileChars sets the profile text cap for validation calls.
func WithMaxProfileChars(n int) ConfigOption {
	return func(c *Config) {
		c.MaxProfileChars = n
	}
}

// WithRetry sets the retry policy for transiently failing chat calls.
func WithRetry(maxRetries int, baseDelay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryBaseDelay = baseDelay
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, both embedding and chat calls use
// the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:   defaultHost,
		ChatHost:        defaultHost,
		EmbeddingModel:  "embeddinggemma",
		ChatModel:       "qwen2.5:3b",
		MaxProfileChars: 3000,
		MaxRetries:      3,
		RetryBaseDelay:  500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.ChatHost != "" && !strings.HasSuffix(c.ChatHost, "/v1") {
		c.ChatHost = strings.TrimSuffix(c.ChatHost, "/")
		c.ChatHost = c.ChatHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.ChatHost == "" {
		return errors.New("ai config: ChatHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.MaxProfileChars < 1 {
		return errors.New("ai config: MaxProfileChars must be positive")
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be positive")
	}
	return nil
}
