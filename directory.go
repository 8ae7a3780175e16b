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

package quaesit

import (
	"log/slog"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/ai/openai"
	"github.com/quaesit/quaesit/ingest"
	"github.com/quaesit/quaesit/pipeline"
	"github.com/quaesit/quaesit/storage"
	"github.com/quaesit/quaesit/storage/badger"
)

// Directory bundles the storage backend, profile repository, and AI provider
// behind one handle. It is the top-level entry point for embedding the query
// pipeline into an application.
type Directory struct {
	backend  *badger.Backend
	profiles storage.ProfileRepository
	provider ai.Provider
	logger   *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI service configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) DirectoryOption {
	return func(o *directoryOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from configuration. The directory takes ownership and closes it.
func WithProvider(provider ai.Provider) DirectoryOption {
	return func(o *directoryOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory; nothing is written to disk.
// Intended for tests and experiments.
func WithInMemoryStorage() DirectoryOption {
	return func(o *directoryOptions) {
		o.inMemory = true
	}
}

// NewDirectory opens (or creates) a profile directory at filePath.
func NewDirectory(filePath string, opts ...DirectoryOption) (*Directory, error) {
	options := &directoryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	profiles, err := badger.NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			profiles.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Directory{
		backend:  backend,
		profiles: profiles,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider, the repository, and the storage backend.
func (d *Directory) Close() error {
	if err := d.provider.Close(); err != nil {
		d.logger.Error("error closing AI provider", "err", err)
	}

	if err := d.profiles.Close(); err != nil {
		d.logger.Error("error closing profile repository", "err", err)
		return err
	}

	if err := d.backend.Close(); err != nil {
		d.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Profiles returns the profile repository.
func (d *Directory) Profiles() storage.ProfileRepository {
	return d.profiles
}

// Provider returns the AI provider.
func (d *Directory) Provider() ai.Provider {
	return d.provider
}

// NewPipeline creates a query pipeline over this directory.
func (d *Directory) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(d.profiles, d.provider, opts...)
}

// NewIngester creates a profile ingester over this directory.
func (d *Directory) NewIngester(opts ...ingest.Option) (*ingest.Ingester, error) {
	return ingest.NewIngester(d.profiles, d.provider, opts...)
}
