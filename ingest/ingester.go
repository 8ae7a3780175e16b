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

package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/core"
	"github.com/quaesit/quaesit/retrieve"
	"github.com/quaesit/quaesit/storage"
)

const defaultBatchSize = 32

// Ingester loads profiles into the directory: profile texts are embedded in
// batches through a worker pool, vectors are normalized to unit length, and
// the finished profiles are stored.
type Ingester struct {
	profiles  storage.ProfileRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures an Ingester.
type Option func(*Ingester) error

// WithBatchSize sets how many profile texts are embedded per call.
func WithBatchSize(n int) Option {
	return func(i *Ingester) error {
		if n < 1 {
			return ErrInvalidBatchSize
		}
		i.batchSize = n
		return nil
	}
}

// WithPoolSize sets the number of concurrent embedding batches.
func WithPoolSize(n int) Option {
	return func(i *Ingester) error {
		if n < 1 {
			return ErrInvalidPoolSize
		}
		if i.pool != nil {
			i.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		i.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingester) error {
		if logger == nil {
			return ErrNilLogger
		}
		i.logger = logger
		return nil
	}
}

// NewIngester creates an ingester over the given repository and provider.
// Call Release when done.
func NewIngester(profiles storage.ProfileRepository, provider ai.Provider, opts ...Option) (*Ingester, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	i := &Ingester{
		profiles:  profiles,
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "ingester"),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			i.Release()
			return nil, err
		}
	}

	return i, nil
}

// Ingest embeds and stores the given profiles, returning how many were
// stored. Profiles that already carry a vector are stored as-is; the rest
// are embedded from their text in concurrent batches. Profiles with no text
// are stored without a vector and stay out of the retrievable universe.
//
// The first embedding failure aborts the whole ingest: a partially embedded
// directory would silently shrink every future answer.
func (i *Ingester) Ingest(ctx context.Context, profiles ...*core.Profile) (int, error) {
	if len(profiles) == 0 {
		return 0, nil
	}

	var pending []*core.Profile
	for _, profile := range profiles {
		if len(profile.Vector) == 0 && profile.Text != "" {
			pending = append(pending, profile)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(pending); start += i.batchSize {
		end := start + i.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		err := i.pool.Submit(func() {
			defer wg.Done()
			if err := i.embedBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			return 0, err
		}
	}
	wg.Wait()

	if firstErr != nil {
		i.logger.Error("error embedding profiles", "err", firstErr)
		return 0, firstErr
	}

	added, err := i.profiles.AddProfiles(ctx, profiles...)
	if err != nil {
		return 0, err
	}

	i.logger.Info("ingested profiles", "count", len(added), "embedded", len(pending))
	return len(added), nil
}

func (i *Ingester) embedBatch(ctx context.Context, batch []*core.Profile) error {
	texts := make([]string, len(batch))
	for n, profile := range batch {
		texts[n] = profile.Text
	}

	vectors, err := i.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return ErrEmbeddingCountMismatch
	}

	for n, vector := range vectors {
		batch[n].Vector = retrieve.NormalizeVector(vector)
	}
	return nil
}

// Release frees the worker pool. The ingester must not be used afterwards.
func (i *Ingester) Release() {
	if i.pool != nil {
		i.pool.Release()
	}
}
