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

package prune

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quaesit/quaesit/core"
)

// TextSource provides profile text for candidates under consideration.
type TextSource interface {
	FetchText(ctx context.Context, id core.ID) (string, error)
}

// Pruner narrows a candidate list by cheap keyword matching before the
// expensive validation stage runs. It never reorders candidates and never
// rejects a candidate whose text cannot be fetched.
type Pruner struct {
	minMatches int
	logger     *slog.Logger
}

// Option configures a Pruner.
type Option func(*Pruner) error

// WithMinMatches sets how many keywords must appear in a candidate's text
// for it to survive pruning. The default is 1 (any keyword).
func WithMinMatches(n int) Option {
	return func(p *Pruner) error {
		if n < 1 {
			return ErrInvalidMinMatches
		}
		p.minMatches = n
		return nil
	}
}

// WithLogger sets the logger used for per-candidate diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pruner) error {
		if logger == nil {
			return ErrNilLogger
		}
		p.logger = logger
		return nil
	}
}

// NewPruner creates a Pruner with the given options.
func NewPruner(opts ...Option) (*Pruner, error) {
	p := &Pruner{
		minMatches: 1,
		logger:     slog.Default().With("component", "pruner"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Prune filters candidates to those whose profile text contains at least
// minMatches of the given keywords, compared case-insensitively as
// substrings. Input order is preserved.
//
// Two deliberate fail-open rules: an empty keyword list passes every
// candidate through unchanged, and a candidate whose text cannot be fetched
// (or is empty) is kept rather than dropped. Pruning exists to save
// validation work, never to lose a plausible match.
func (p *Pruner) Prune(ctx context.Context, candidates []core.CandidateRecord, keywords []string, texts TextSource) ([]core.CandidateRecord, error) {
	if texts == nil {
		return nil, ErrNilTextSource
	}

	if len(keywords) == 0 {
		out := make([]core.CandidateRecord, len(candidates))
		copy(out, candidates)
		return out, nil
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	if len(lowered) == 0 {
		out := make([]core.CandidateRecord, len(candidates))
		copy(out, candidates)
		return out, nil
	}

	kept := make([]core.CandidateRecord, 0, len(candidates))
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := texts.FetchText(ctx, cand.ProfileId)
		if err != nil || text == "" {
			if err != nil {
				p.logger.Debug("text unavailable, keeping candidate", "id", cand.ProfileId, "err", err)
			}
			kept = append(kept, cand)
			continue
		}

		if countMatches(strings.ToLower(text), lowered) >= p.minMatches {
			kept = append(kept, cand)
		}
	}

	p.logger.Debug("pruned candidates",
		"in", len(candidates),
		"out", len(kept),
		"keywords", len(lowered),
	)

	return kept, nil
}

func countMatches(loweredText string, loweredKeywords []string) int {
	n := 0
	for _, kw := range loweredKeywords {
		if strings.Contains(loweredText, kw) {
			n++
		}
	}
	return n
}
