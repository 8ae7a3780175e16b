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

package validate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/core"
)

const (
	defaultMaxWorkers = 15
	defaultBatchSize  = 15
	defaultBatchDelay = 100 * time.Millisecond
)

// TextSource provides profile text for candidates under validation.
type TextSource interface {
	FetchText(ctx context.Context, id core.ID) (string, error)
}

// Validator runs LLM relevance checks over candidate lists with bounded
// concurrency. Candidates are dispatched in batches through a fixed-size
// worker pool, with a short pause between batches to avoid hammering the
// model host.
type Validator struct {
	checker    ai.CandidateValidator
	pool       *ants.Pool
	maxWorkers int
	batchSize  int
	batchDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithMaxWorkers sets the worker pool size, the hard cap on concurrent
// in-flight validation calls.
func WithMaxWorkers(n int) Option {
	return func(v *Validator) error {
		if n < 1 {
			return ErrInvalidWorkers
		}
		v.maxWorkers = n
		return nil
	}
}

// WithBatchSize sets how many candidates are dispatched per batch.
func WithBatchSize(n int) Option {
	return func(v *Validator) error {
		if n < 1 {
			return ErrInvalidBatchSize
		}
		v.batchSize = n
		return nil
	}
}

// WithBatchDelay sets the pause between batches.
func WithBatchDelay(d time.Duration) Option {
	return func(v *Validator) error {
		if d < 0 {
			return ErrInvalidBatchDelay
		}
		v.batchDelay = d
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			return ErrNilLogger
		}
		v.logger = logger
		return nil
	}
}

// NewValidator creates a Validator backed by the given relevance checker.
// Call Release when done to free the worker pool.
func NewValidator(checker ai.CandidateValidator, opts ...Option) (*Validator, error) {
	if checker == nil {
		return nil, ErrNilChecker
	}

	v := &Validator{
		checker:    checker,
		maxWorkers: defaultMaxWorkers,
		batchSize:  defaultBatchSize,
		batchDelay: defaultBatchDelay,
		logger:     slog.Default().With("component", "validator"),
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(v.maxWorkers)
	if err != nil {
		return nil, err
	}
	v.pool = pool

	return v, nil
}

// Validate checks every candidate against the query and returns exactly one
// outcome per candidate, in input order. Retrieval scores are carried
// through unchanged.
//
// A failure on one candidate never aborts the rest: the outcome's Err field
// records it and the batch continues. If the context expires mid-run, every
// not-yet-dispatched candidate gets an outcome carrying the context error.
func (v *Validator) Validate(ctx context.Context, query string, candidates []core.CandidateRecord, texts TextSource) ([]core.ValidationOutcome, error) {
	if texts == nil {
		return nil, ErrNilTextSource
	}

	outcomes := make([]core.ValidationOutcome, len(candidates))
	for i, cand := range candidates {
		outcomes[i] = core.ValidationOutcome{ProfileId: cand.ProfileId, Score: cand.Score}
	}

	start := time.Now()
	for batchStart := 0; batchStart < len(candidates); batchStart += v.batchSize {
		batchEnd := batchStart + v.batchSize
		if batchEnd > len(candidates) {
			batchEnd = len(candidates)
		}

		if err := ctx.Err(); err != nil {
			for i := batchStart; i < len(candidates); i++ {
				outcomes[i].Err = err
			}
			break
		}

		v.runBatch(ctx, query, candidates[batchStart:batchEnd], outcomes[batchStart:batchEnd], texts)

		if batchEnd < len(candidates) && v.batchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(v.batchDelay):
			}
		}
	}

	accepted := 0
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		} else if o.Accepted {
			accepted++
		}
	}
	v.logger.Debug("validation complete",
		"candidates", len(candidates),
		"accepted", accepted,
		"failed", failed,
		"duration", time.Since(start),
	)

	return outcomes, nil
}

func (v *Validator) runBatch(ctx context.Context, query string, batch []core.CandidateRecord, outcomes []core.ValidationOutcome, texts TextSource) {
	var wg sync.WaitGroup
	for i := range batch {
		i := i
		wg.Add(1)
		err := v.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = v.validateOne(ctx, query, batch[i], texts)
		})
		if err != nil {
			wg.Done()
			outcomes[i].Err = err
		}
	}
	wg.Wait()
}

func (v *Validator) validateOne(ctx context.Context, query string, cand core.CandidateRecord, texts TextSource) core.ValidationOutcome {
	outcome := core.ValidationOutcome{ProfileId: cand.ProfileId, Score: cand.Score}

	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	text, err := texts.FetchText(ctx, cand.ProfileId)
	if err != nil {
		v.logger.Debug("text fetch failed", "id", cand.ProfileId, "err", err)
		outcome.Err = err
		return outcome
	}

	verdict, err := v.checker.ValidateCandidate(ctx, query, text)
	if err != nil {
		v.logger.Debug("validation call failed", "id", cand.ProfileId, "err", err)
		outcome.Err = err
		return outcome
	}

	outcome.Accepted = verdict.Accepted
	outcome.Rationale = verdict.Rationale
	return outcome
}

// Release frees the worker pool. The validator must not be used afterwards.
func (v *Validator) Release() {
	if v.pool != nil {
		v.pool.Release()
	}
}
